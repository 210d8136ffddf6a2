package service

// ImageStore manages the on-disk image assets associated with products.
// Upload handling itself lives outside this service; the store only needs
// the cascading cleanup when a product is deleted.
type ImageStore interface {
	// RemoveAll deletes every stored image asset for the given product.
	// Removing assets for a product that has none is not an error.
	RemoveAll(productID string) error
}
