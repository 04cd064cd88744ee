package http

import (
	"net/http"

	domcheckout "example.com/branch-cart/app/internal/domain/checkout"
	domorder "example.com/branch-cart/app/internal/domain/order"
	sessionuc "example.com/branch-cart/app/internal/usecase/session"
)

type paymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

type chooseBranchRequest struct {
	BranchID int64 `json:"branch_id" validate:"required,gt=0"`
}

func (a *API) handleGetCheckout(w http.ResponseWriter, r *http.Request) {
	a.withCheckout(w, r, func(sc sessionuc.Scope) (*domorder.Order, error) {
		return nil, nil
	})
}

func (a *API) handleStartCheckout(w http.ResponseWriter, r *http.Request) {
	a.withCheckout(w, r, func(sc sessionuc.Scope) (*domorder.Order, error) {
		sc.Checkout.Start()
		return nil, nil
	})
}

func (a *API) handleCancelCheckout(w http.ResponseWriter, r *http.Request) {
	a.withCheckout(w, r, func(sc sessionuc.Scope) (*domorder.Order, error) {
		sc.Checkout.Cancel()
		return nil, nil
	})
}

func (a *API) handleForgetBranch(w http.ResponseWriter, r *http.Request) {
	a.withCheckout(w, r, func(sc sessionuc.Scope) (*domorder.Order, error) {
		return nil, sc.Checkout.ForgetBranch()
	})
}

func (a *API) handleChoosePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req paymentMethodRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	// Unknown values pass through so the sequencer reports them.
	method, ok := domorder.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		method = domorder.PaymentMethod(req.PaymentMethod)
	}

	a.withCheckout(w, r, func(sc sessionuc.Scope) (*domorder.Order, error) {
		return sc.Checkout.ChoosePaymentMethod(r.Context(), method)
	})
}

func (a *API) handleChooseBranch(w http.ResponseWriter, r *http.Request) {
	var req chooseBranchRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	branch, err := a.branchSvc.GetByID(r.Context(), req.BranchID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	a.withCheckout(w, r, func(sc sessionuc.Scope) (*domorder.Order, error) {
		return sc.Checkout.ChooseBranch(r.Context(), *branch)
	})
}

// withCheckout runs fn under the session lock and renders the checkout status,
// plus the dispatched order and its deep link when fn produced one.
func (a *API) withCheckout(w http.ResponseWriter, r *http.Request, fn func(sc sessionuc.Scope) (*domorder.Order, error)) {
	sess := getSession(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, errNoSession)
		return
	}

	var (
		st    domcheckout.Status
		order *domorder.Order
		links []string
	)
	err := sess.Do(func(sc sessionuc.Scope) error {
		var err error
		order, err = fn(sc)
		st = sc.Checkout.Status()
		links = sc.Links()
		return err
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := mapCheckout(st)
	if order != nil {
		resp["order"] = mapOrder(order)
		if len(links) > 0 {
			resp["deep_link"] = links[len(links)-1]
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
