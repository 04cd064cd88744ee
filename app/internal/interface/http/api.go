package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	dombranch "example.com/branch-cart/app/internal/domain/branch"
	domcart "example.com/branch-cart/app/internal/domain/cart"
	domcheckout "example.com/branch-cart/app/internal/domain/checkout"
	domorder "example.com/branch-cart/app/internal/domain/order"
	domproduct "example.com/branch-cart/app/internal/domain/product"
	branchuc "example.com/branch-cart/app/internal/usecase/branch"
	productuc "example.com/branch-cart/app/internal/usecase/product"
	sessionuc "example.com/branch-cart/app/internal/usecase/session"
)

// TokenService turns session ids into bearer handles and back.
type TokenService interface {
	GenerateToken(sessionID string) (string, error)
	ParseToken(token string) (string, error)
}

type API struct {
	productSvc *productuc.Service
	branchSvc  *branchuc.Service
	sessions   *sessionuc.Manager
	tokenSvc   TokenService
	validator  *validator.Validate
	logger     *zap.Logger
}

type Dependencies struct {
	ProductService *productuc.Service
	BranchService  *branchuc.Service
	Sessions       *sessionuc.Manager
	TokenService   TokenService
	Logger         *zap.Logger
}

func NewAPI(deps Dependencies) *API {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		productSvc: deps.ProductService,
		branchSvc:  deps.BranchService,
		sessions:   deps.Sessions,
		tokenSvc:   deps.TokenService,
		validator:  validator.New(),
		logger:     logger,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(a.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", a.handleCreateSession)

		r.Get("/products", a.handleListProducts)
		r.Get("/products/{id}", a.handleGetProduct)
		r.Get("/branches", a.handleListBranches)
		r.Get("/branches/{id}", a.handleGetBranch)

		r.Group(func(sr chi.Router) {
			sr.Use(a.sessionMiddleware)
			sr.Delete("/me", a.handleEndSession)

			sr.Get("/me/cart", a.handleGetCart)
			sr.Delete("/me/cart", a.handleClearCart)
			sr.Post("/me/cart/items", a.handleAddCartItem)
			sr.Delete("/me/cart/items/{productID}", a.handleRemoveCartItem)

			sr.Get("/me/checkout", a.handleGetCheckout)
			sr.Post("/me/checkout", a.handleStartCheckout)
			sr.Delete("/me/checkout", a.handleCancelCheckout)
			sr.Post("/me/checkout/payment-method", a.handleChoosePaymentMethod)
			sr.Post("/me/checkout/branch", a.handleChooseBranch)
			sr.Delete("/me/checkout/branch", a.handleForgetBranch)
		})
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Notice  string `json:"notice,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

func mapProduct(p *domproduct.Product) map[string]any {
	return map[string]any{
		"id":              p.ID,
		"name":            p.Name,
		"price":           p.Price,
		"price_formatted": domcart.FormatAmount(p.Price),
		"image":           p.Image,
	}
}

func mapBranch(b *dombranch.Branch) map[string]any {
	return map[string]any{
		"id":     b.ID,
		"name":   b.Name,
		"number": b.Number,
	}
}

func mapLineItems(lines []domcart.LineItem) []map[string]any {
	items := make([]map[string]any, 0, len(lines))
	for _, item := range lines {
		items = append(items, map[string]any{
			"product_id": item.ProductID,
			"name":       item.Name,
			"price":      item.Price,
			"image":      item.Image,
			"quantity":   item.Quantity,
			"subtotal":   item.Subtotal(),
		})
	}
	return items
}

func mapCart(cart domcart.Cart) map[string]any {
	return map[string]any{
		"items":           mapLineItems(cart.Items),
		"item_count":      cart.ItemCount,
		"total":           cart.Total,
		"total_formatted": domcart.FormatAmount(cart.Total),
		"revision":        cart.Revision,
	}
}

func mapOrder(o *domorder.Order) map[string]any {
	return map[string]any{
		"payment_method": o.PaymentMethod,
		"branch":         mapBranch(&o.Branch),
		"contact":        o.Contact,
		"items":          mapLineItems(o.Items),
		"total":          o.Total,
		"message":        o.Message,
		"dispatched_at":  o.DispatchedAt,
	}
}

func mapCheckout(st domcheckout.Status) map[string]any {
	resp := map[string]any{
		"state":           st.State,
		"payment_method":  nil,
		"selected_branch": nil,
		"last_order":      nil,
	}
	if st.PaymentMethod != nil {
		resp["payment_method"] = *st.PaymentMethod
	}
	if st.SelectedBranch != nil {
		resp["selected_branch"] = mapBranch(st.SelectedBranch)
	}
	if st.LastOrder != nil {
		resp["last_order"] = mapOrder(st.LastOrder)
	}
	return resp
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domcheckout.ErrEmptyCart),
		errors.Is(err, domcheckout.ErrMissingBranchContact):
		// Advisory: the client shows the notice and may retry.
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  err.Error(),
			Notice: domcheckout.Notice(err),
		})
	case errors.Is(err, domcheckout.ErrInvalidPaymentMethod):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domcheckout.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err)
	case errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, dombranch.ErrBranchNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, sessionuc.ErrSessionNotFound):
		respondError(w, http.StatusUnauthorized, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
