package handler

import (
	"net/http"
	"strconv"
	"strings"

	"nuovo/internal/delivery/http/middleware"
	"nuovo/internal/delivery/http/response"
	"nuovo/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for product catalog, click and wishlist
// handlers.
type ProductHandler struct {
	store *store.Store
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(st *store.Store) *ProductHandler {
	return &ProductHandler{store: st}
}

type productRequest struct {
	Name          string   `json:"name"`
	ProductURL    string   `json:"product_url"`
	BrandID       string   `json:"brand_id"`
	MainCategory  string   `json:"main_category"`
	SubCategory   string   `json:"sub_category"`
	Size          []string `json:"size"`
	Colour        string   `json:"colour"`
	Price         string   `json:"price"`
	PreviousPrice string   `json:"previous_price"`
	Stock         string   `json:"stock"`
	Status        string   `json:"status"`
	PictureURLs   []string `json:"picture_urls"`
}

// AddProduct creates a product. Admin only.
func (h *ProductHandler) AddProduct(c echo.Context) error {
	var input productRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if input.Name == "" || input.BrandID == "" {
		return response.BindingError(c, "INVALID_INPUT", "Product name and brand_id are required")
	}

	product, err := h.store.AddProduct(c.Request().Context(), store.ProductInput{
		Name:          input.Name,
		ProductURL:    input.ProductURL,
		BrandID:       input.BrandID,
		MainCategory:  input.MainCategory,
		SubCategory:   input.SubCategory,
		Size:          input.Size,
		Colour:        input.Colour,
		Price:         input.Price,
		PreviousPrice: input.PreviousPrice,
		Stock:         input.Stock,
		Status:        input.Status,
		PictureURLs:   input.PictureURLs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product added successfully")
}

// EditProduct updates a product. Admin only.
func (h *ProductHandler) EditProduct(c echo.Context) error {
	var input productRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.store.EditProduct(c.Request().Context(), c.Param("product_id"), store.ProductUpdate{
		Name:          input.Name,
		ProductURL:    input.ProductURL,
		BrandID:       input.BrandID,
		MainCategory:  input.MainCategory,
		SubCategory:   input.SubCategory,
		Size:          input.Size,
		Colour:        input.Colour,
		Price:         input.Price,
		PreviousPrice: input.PreviousPrice,
		Stock:         input.Stock,
		Status:        input.Status,
		PictureURLs:   input.PictureURLs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// DeleteProduct removes a product. Admin only.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	if err := h.store.DeleteProduct(c.Request().Context(), c.Param("product_id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// GetProduct returns one product. Public.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.store.Product(c.Param("product_id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// GetProducts lists products with the catalog filters. Public.
//
// List-valued parameters take comma-separated values, e.g.
// ?main_category=mens-shoes,womens-shoes&size=42,43.
func (h *ProductHandler) GetProducts(c echo.Context) error {
	filter := store.ProductFilter{
		MainCategories:   queryList(c, "main_category"),
		SubCategories:    queryList(c, "sub_category"),
		Colours:          queryList(c, "color"),
		BrandNames:       queryList(c, "brand_name"),
		Sizes:            queryList(c, "size"),
		Statuses:         queryList(c, "status"),
		Stock:            c.QueryParam("stock"),
		MinPrice:         queryFloat(c, "min_price"),
		MaxPrice:         queryFloat(c, "max_price"),
		Keyword:          c.QueryParam("keyword"),
		SortByPopularity: c.QueryParam("sort_by_popularity") == "true",
		SortByPrice:      c.QueryParam("sort_by_price"),
		SortByNew:        c.QueryParam("sort_by_new"),
	}

	cards, err := h.store.ListProducts(filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cards, "")
}

func queryList(c echo.Context, name string) []string {
	value := c.QueryParam(name)
	if value == "" {
		return nil
	}

	return strings.Split(value, ",")
}

func queryFloat(c echo.Context, name string) float64 {
	value, err := strconv.ParseFloat(c.QueryParam(name), 64)
	if err != nil {
		return 0
	}

	return value
}

// RecordClick counts one product card click. Public.
func (h *ProductHandler) RecordClick(c echo.Context) error {
	count, err := h.store.RecordClick(c.Request().Context(), c.Param("product_id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"click_count": count}, "")
}

// RecordClickThrough counts one external page open. Public.
func (h *ProductHandler) RecordClickThrough(c echo.Context) error {
	count, err := h.store.RecordClickThrough(c.Request().Context(), c.Param("product_id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"click_through_count": count}, "")
}

// AddToWishlist puts a product on the caller's wishlist.
func (h *ProductHandler) AddToWishlist(c echo.Context) error {
	err := h.store.WishlistAdd(c.Request().Context(), middleware.CallerEmail(c), c.Param("product_id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product added to wish list")
}

// RemoveFromWishlist takes a product off the caller's wishlist.
func (h *ProductHandler) RemoveFromWishlist(c echo.Context) error {
	err := h.store.WishlistRemove(c.Request().Context(), middleware.CallerEmail(c), c.Param("product_id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product removed from wish list")
}

// GetWishlist returns the products on the caller's wishlist.
func (h *ProductHandler) GetWishlist(c echo.Context) error {
	products, err := h.store.Wishlist(middleware.CallerEmail(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}
