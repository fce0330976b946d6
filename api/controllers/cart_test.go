package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/rohandesai/brandline-backend/api/middleware"
	"github.com/rohandesai/brandline-backend/internal/cart"
)

type stubCartService struct {
	cart.Service

	sessionID string
	addInput  cart.AddItemInput
	updatedID string
	updateQty int
	dto       *cart.CartDTO
}

func (s *stubCartService) Get(_ context.Context, sessionID string) (*cart.CartDTO, error) {
	s.sessionID = sessionID
	return s.cartDTO(), nil
}

func (s *stubCartService) AddItem(_ context.Context, sessionID string, input cart.AddItemInput) (*cart.CartDTO, error) {
	s.sessionID = sessionID
	s.addInput = input
	return s.cartDTO(), nil
}

func (s *stubCartService) UpdateItem(_ context.Context, sessionID, lineID string, quantity int) (*cart.CartDTO, error) {
	s.sessionID = sessionID
	s.updatedID = lineID
	s.updateQty = quantity
	return s.cartDTO(), nil
}

func (s *stubCartService) cartDTO() *cart.CartDTO {
	if s.dto != nil {
		return s.dto
	}
	return &cart.CartDTO{Lines: []cart.LineDTO{}}
}

func sessionContext(sessionID string) context.Context {
	return middleware.WithSessionID(context.Background(), sessionID)
}

func TestGetCartUsesSessionFromContext(t *testing.T) {
	stub := &stubCartService{}
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil).
		WithContext(sessionContext("sess-9"))
	rec := httptest.NewRecorder()

	GetCart(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.sessionID != "sess-9" {
		t.Fatalf("expected session from context, got %q", stub.sessionID)
	}
	var body cart.CartDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Lines == nil {
		t.Fatal("lines must serialize as an array, not null")
	}
}

func TestAddCartItemDecodesPayload(t *testing.T) {
	stub := &stubCartService{}
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
		strings.NewReader(`{"productId":3,"sizeId":7,"quantity":2}`)).
		WithContext(sessionContext("sess-9"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	AddCartItem(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	want := cart.AddItemInput{ProductID: 3, SizeID: 7, Quantity: 2}
	if stub.addInput != want {
		t.Fatalf("expected %+v, got %+v", want, stub.addInput)
	}
}

func TestAddCartItemRejectsZeroQuantity(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
		strings.NewReader(`{"productId":3,"sizeId":7,"quantity":0}`)).
		WithContext(sessionContext("sess-9"))
	rec := httptest.NewRecorder()

	AddCartItem(&stubCartService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateCartItemPassesLineID(t *testing.T) {
	stub := &stubCartService{}
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("lineId", "3-7")
	ctx := context.WithValue(sessionContext("sess-9"), chi.RouteCtxKey, routeCtx)

	req := httptest.NewRequest(http.MethodPatch, "/api/cart/items/3-7",
		strings.NewReader(`{"quantity":0}`)).WithContext(ctx)
	rec := httptest.NewRecorder()

	UpdateCartItem(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.updatedID != "3-7" || stub.updateQty != 0 {
		t.Fatalf("expected line 3-7 qty 0, got %q qty %d", stub.updatedID, stub.updateQty)
	}
}
