package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLogo = "bG9nbw=="

func (fx *handlerFixture) adminToken(t *testing.T) string {
	t.Helper()

	rec := fx.request(http.MethodPost, "/user/auth/register",
		`{"name":"Root","email":"root@example.com","password":"secret","is_admin":true}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return fx.login(t, "root@example.com", "secret")
}

func (fx *handlerFixture) customerToken(t *testing.T) string {
	t.Helper()

	rec := fx.request(http.MethodPost, "/user/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return fx.login(t, "alice@example.com", "secret")
}

func (fx *handlerFixture) createBrand(t *testing.T, token, name string) string {
	t.Helper()

	rec := fx.request(http.MethodPost, "/admin/brands",
		`{"name":"`+name+`","description":"desc","logo":"`+testLogo+`"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var envelope struct {
		Data struct {
			BrandID string `json:"brand_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.BrandID)

	return envelope.Data.BrandID
}

func (fx *handlerFixture) createProduct(t *testing.T, token, brandID, name, status string) string {
	t.Helper()

	rec := fx.request(http.MethodPost, "/admin/products",
		`{"name":"`+name+`","brand_id":"`+brandID+`","main_category":"mens-shoes","sub_category":"sneakers","size":["42:1"],"colour":"white","price":"99.90","stock":"In Stock","status":"`+status+`"}`,
		token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var envelope struct {
		Data struct {
			ProductID string `json:"product_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.ProductID)

	return envelope.Data.ProductID
}

func TestBrandHandler_AddBrand_RejectsBadLogo(t *testing.T) {
	fx := newHandlerFixture(t)
	token := fx.adminToken(t)

	rec := fx.request(http.MethodPost, "/admin/brands",
		`{"name":"Acme","description":"desc","logo":"not base64!!"}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_LOGO")
}

func TestBrandHandler_AddAndListBrands(t *testing.T) {
	fx := newHandlerFixture(t)
	token := fx.adminToken(t)

	fx.createBrand(t, token, "Acme")
	fx.createBrand(t, token, "Bolt")

	rec := fx.request(http.MethodGet, "/brands", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Acme"`)
	assert.Contains(t, rec.Body.String(), `"name":"Bolt"`)
}

func TestBrandHandler_FollowBrand(t *testing.T) {
	fx := newHandlerFixture(t)
	adminToken := fx.adminToken(t)
	brandID := fx.createBrand(t, adminToken, "Acme")
	customerToken := fx.customerToken(t)

	rec := fx.request(http.MethodPost, "/user/follow_brand/"+brandID, "", customerToken)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = fx.request(http.MethodPost, "/user/follow_brand/"+brandID, "", customerToken)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "ALREADY_FOLLOWING")

	rec = fx.request(http.MethodGet, "/user/profile", "", customerToken)
	assert.Contains(t, rec.Body.String(), brandID)
}

func TestProductHandler_AddProduct_UnknownBrand(t *testing.T) {
	fx := newHandlerFixture(t)
	token := fx.adminToken(t)

	rec := fx.request(http.MethodPost, "/admin/products",
		`{"name":"Air Max","brand_id":"missing"}`, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "BRAND_NOT_FOUND")
}

func TestProductHandler_ListProducts_FilterByStatus(t *testing.T) {
	fx := newHandlerFixture(t)
	token := fx.adminToken(t)
	brandID := fx.createBrand(t, token, "Acme")
	fx.createProduct(t, token, brandID, "Air Max", "New")
	fx.createProduct(t, token, brandID, "Old Runner", "")

	rec := fx.request(http.MethodGet, "/products?status=New", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Air Max"`)
	assert.NotContains(t, rec.Body.String(), `"name":"Old Runner"`)
}

func TestProductHandler_ListProducts_EmptyResultIsNotFound(t *testing.T) {
	fx := newHandlerFixture(t)

	rec := fx.request(http.MethodGet, "/products?keyword=nothing-matches", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_RecordClick(t *testing.T) {
	fx := newHandlerFixture(t)
	token := fx.adminToken(t)
	brandID := fx.createBrand(t, token, "Acme")
	productID := fx.createProduct(t, token, brandID, "Air Max", "New")

	rec := fx.request(http.MethodPost, "/products/"+productID+"/click", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"click_count":1`)

	rec = fx.request(http.MethodPost, "/products/"+productID+"/click", "", "")
	assert.Contains(t, rec.Body.String(), `"click_count":2`)
}

func TestProductHandler_Wishlist(t *testing.T) {
	fx := newHandlerFixture(t)
	adminToken := fx.adminToken(t)
	brandID := fx.createBrand(t, adminToken, "Acme")
	productID := fx.createProduct(t, adminToken, brandID, "Air Max", "New")
	customerToken := fx.customerToken(t)

	rec := fx.request(http.MethodPost, "/user/wishlist/"+productID, "", customerToken)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = fx.request(http.MethodGet, "/user/wishlist", "", customerToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Air Max"`)
}
