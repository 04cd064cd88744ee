package http

import (
	"net/http"

	domcart "example.com/branch-cart/app/internal/domain/cart"
	sessionuc "example.com/branch-cart/app/internal/usecase/session"
)

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	sess := getSession(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, errNoSession)
		return
	}

	var cart domcart.Cart
	_ = sess.Do(func(sc sessionuc.Scope) error {
		cart = sc.Cart.Snapshot()
		return nil
	})
	writeJSON(w, http.StatusOK, mapCart(cart))
}

func (a *API) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	sess := getSession(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, errNoSession)
		return
	}

	var req addCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	product, err := a.productSvc.GetByID(r.Context(), req.ProductID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	var cart domcart.Cart
	_ = sess.Do(func(sc sessionuc.Scope) error {
		sc.Cart.Add(*product)
		cart = sc.Cart.Snapshot()
		return nil
	})
	writeJSON(w, http.StatusCreated, mapCart(cart))
}

func (a *API) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sess := getSession(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, errNoSession)
		return
	}

	productID, err := parseIDParam(r, "productID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	// Removing an absent product is a no-op, not an error.
	var cart domcart.Cart
	_ = sess.Do(func(sc sessionuc.Scope) error {
		sc.Cart.Remove(productID)
		cart = sc.Cart.Snapshot()
		return nil
	})
	writeJSON(w, http.StatusOK, mapCart(cart))
}

func (a *API) handleClearCart(w http.ResponseWriter, r *http.Request) {
	sess := getSession(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, errNoSession)
		return
	}

	var cart domcart.Cart
	_ = sess.Do(func(sc sessionuc.Scope) error {
		sc.Cart.Clear()
		cart = sc.Cart.Snapshot()
		return nil
	})
	writeJSON(w, http.StatusOK, mapCart(cart))
}
