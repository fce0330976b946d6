package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/rohandesai/brandline-backend/internal/catalog"
	pkgerrors "github.com/rohandesai/brandline-backend/pkg/errors"
	"github.com/rohandesai/brandline-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

type stubCatalogService struct {
	catalog.Service

	listFilters catalog.Filters
	listResult  []catalog.ProductDTO
	listErr     error

	getResult *catalog.ProductDTO
	getErr    error
}

func (s *stubCatalogService) ListProducts(_ context.Context, filters catalog.Filters) ([]catalog.ProductDTO, error) {
	s.listFilters = filters
	if s.listErr != nil {
		return nil, s.listErr
	}
	if s.listResult == nil {
		return []catalog.ProductDTO{}, nil
	}
	return s.listResult, nil
}

func (s *stubCatalogService) GetProduct(_ context.Context, _ uint) (*catalog.ProductDTO, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.getResult, nil
}

func TestListProductsComposesFilters(t *testing.T) {
	stub := &stubCatalogService{}
	req := httptest.NewRequest(http.MethodGet,
		"/api/products?category=shirts&brand=acme&isNew=true&isTrending=1&search=tee", nil)
	rec := httptest.NewRecorder()

	ListProducts(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.listFilters.CategorySlug != "shirts" || stub.listFilters.BrandSlug != "acme" {
		t.Fatalf("unexpected slugs %+v", stub.listFilters)
	}
	if !stub.listFilters.IsNew {
		t.Fatal("isNew=true must set the flag")
	}
	if stub.listFilters.IsTrending {
		t.Fatal("isTrending=1 must not set the flag")
	}
	if stub.listFilters.Search != "tee" {
		t.Fatalf("unexpected search %q", stub.listFilters.Search)
	}
}

func TestListProductsEmptyResultIsOK(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/products?search=zzz", nil)
	rec := httptest.NewRecorder()

	ListProducts(&stubCatalogService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body []any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body) != 0 {
		t.Fatalf("expected empty list, got %v", body)
	}
}

func productRequest(t *testing.T, id string, stub *stubCatalogService) *httptest.ResponseRecorder {
	t.Helper()
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	ctx := context.WithValue(context.Background(), chi.RouteCtxKey, routeCtx)
	req := httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	GetProduct(stub, testLogger()).ServeHTTP(rec, req)
	return rec
}

func TestGetProductNotFoundShape(t *testing.T) {
	stub := &stubCatalogService{getErr: pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")}
	rec := productRequest(t, "42", stub)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "Product not found" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestGetProductRejectsBadID(t *testing.T) {
	rec := productRequest(t, "abc", &stubCatalogService{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}
