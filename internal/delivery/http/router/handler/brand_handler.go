package handler

import (
	"net/http"

	"nuovo/internal/delivery/http/middleware"
	"nuovo/internal/delivery/http/response"
	"nuovo/internal/domain/entity"
	"nuovo/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BrandHandler holds dependencies for brand catalog and follow handlers.
type BrandHandler struct {
	store *store.Store
}

// NewBrandHandler is the constructor for BrandHandler, injected by Fx.
func NewBrandHandler(st *store.Store) *BrandHandler {
	return &BrandHandler{store: st}
}

type brandRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
}

// AddBrand creates a brand. Admin only.
func (h *BrandHandler) AddBrand(c echo.Context) error {
	var input brandRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid brand input")
	}
	if input.Name == "" {
		return response.BindingError(c, "INVALID_INPUT", "Brand name is required")
	}

	brand, err := h.store.AddBrand(c.Request().Context(), input.Name, input.Description, input.Logo)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, brand, "Brand added successfully")
}

// EditBrand updates a brand. Admin only.
func (h *BrandHandler) EditBrand(c echo.Context) error {
	var input brandRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid brand input")
	}

	brand, err := h.store.EditBrand(c.Request().Context(), c.Param("brand_id"), input.Name, input.Description, input.Logo)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, brand, "Brand updated successfully")
}

// DeleteBrand removes a brand with no products left. Admin only.
func (h *BrandHandler) DeleteBrand(c echo.Context) error {
	if err := h.store.DeleteBrand(c.Request().Context(), c.Param("brand_id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Brand deleted successfully")
}

// GetBrands lists every brand. Public.
func (h *BrandHandler) GetBrands(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.store.Brands(), "")
}

// GetBrand returns one brand. Public.
func (h *BrandHandler) GetBrand(c echo.Context) error {
	brand, err := h.store.Brand(c.Param("brand_id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, brand, "")
}

// FollowBrand records a brand follow for the caller.
func (h *BrandHandler) FollowBrand(c echo.Context) error {
	err := h.store.FollowBrand(c.Request().Context(), middleware.CallerEmail(c), c.Param("brand_id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Brand followed successfully")
}

// UnfollowBrand removes a brand follow for the caller.
func (h *BrandHandler) UnfollowBrand(c echo.Context) error {
	err := h.store.UnfollowBrand(c.Request().Context(), middleware.CallerEmail(c), c.Param("brand_id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Brand unfollowed successfully")
}

// FollowSubcategory records a sub-category follow for the caller.
func (h *BrandHandler) FollowSubcategory(c echo.Context) error {
	err := h.store.FollowSubcategory(c.Request().Context(), middleware.CallerEmail(c), c.Param("subcategory"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Subcategory followed successfully")
}

// UnfollowSubcategory removes a sub-category follow for the caller.
func (h *BrandHandler) UnfollowSubcategory(c echo.Context) error {
	err := h.store.UnfollowSubcategory(c.Request().Context(), middleware.CallerEmail(c), c.Param("subcategory"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Subcategory unfollowed successfully")
}

type followingResponse struct {
	Wishlist        []*entity.Product `json:"wishlist"`
	FollowingBrands []*entity.Brand   `json:"followingBrands"`
}

// GetFollowing returns the caller's dashboard view: followed brands and the
// resolved wishlist products.
func (h *BrandHandler) GetFollowing(c echo.Context) error {
	brands, wishlist, err := h.store.Following(middleware.CallerEmail(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, followingResponse{
		Wishlist:        wishlist,
		FollowingBrands: brands,
	}, "")
}
