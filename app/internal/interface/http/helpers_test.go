package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dombranch "example.com/branch-cart/app/internal/domain/branch"
	domproduct "example.com/branch-cart/app/internal/domain/product"
	"example.com/branch-cart/app/internal/infra/messaging"
	"example.com/branch-cart/app/internal/infra/persistence/memory"
	"example.com/branch-cart/app/internal/infra/security"
	branchuc "example.com/branch-cart/app/internal/usecase/branch"
	productuc "example.com/branch-cart/app/internal/usecase/product"
	sessionuc "example.com/branch-cart/app/internal/usecase/session"
)

var testProducts = []domproduct.Product{
	{ID: 1, Name: "Burger", Price: 2.50, Image: "burger.png"},
	{ID: 2, Name: "Fries", Price: 1.00, Image: "fries.png"},
}

var testBranches = []dombranch.Branch{
	{ID: 1, Name: "Downtown", Number: "15551234567"},
	{ID: 2, Name: "Harbor", Number: ""},
}

func setupAPI(t *testing.T, remember bool) (http.Handler, *security.SessionTokenService) {
	t.Helper()

	productRepo, err := memory.NewProductRepository(testProducts)
	require.NoError(t, err)
	branchRepo, err := memory.NewBranchRepository(testBranches)
	require.NoError(t, err)

	tokenSvc := security.NewSessionTokenService("test-secret", time.Hour)
	sessions := sessionuc.NewManager(sessionuc.Config{
		TTL:            time.Hour,
		RememberBranch: remember,
		NewOutbox: func(logger *zap.Logger) sessionuc.Outbox {
			return messaging.NewClientDispatcher(messaging.DefaultLinkBase, logger)
		},
	})

	api := NewAPI(Dependencies{
		ProductService: productuc.NewService(productRepo),
		BranchService:  branchuc.NewService(branchRepo),
		Sessions:       sessions,
		TokenService:   tokenSvc,
	})
	return api.Router(), tokenSvc
}

func newSession(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := doRequest(router, http.MethodPost, "/api/v1/sessions", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["session_id"])
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func doRequest(router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}
