package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/clinic-api/internal/handlers"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/router"
	"github.com/harentsoaR/clinic-api/internal/store/memstore"
	"github.com/harentsoaR/clinic-api/internal/utils"
	"github.com/stretchr/testify/require"
)

const testSecret = "handlers-test-secret"

type fakeCheckout struct {
	mu      sync.Mutex
	amounts []int64
	err     error
}

func (f *fakeCheckout) CreatePaymentIntent(_ context.Context, amountCents int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.amounts = append(f.amounts, amountCents)
	return "pi_test_secret", nil
}

type testServer struct {
	t        *testing.T
	stores   handlers.Stores
	tokens   *utils.TokenManager
	checkout *fakeCheckout
	opts     handlers.Options
	engine   *gin.Engine
}

func newTestServer(t *testing.T, opts ...func(*handlers.Options)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &testServer{
		t: t,
		stores: handlers.Stores{
			Services: memstore.NewCollection[models.Service](),
			Bookings: memstore.NewCollection[models.Booking](),
			Users:    memstore.NewCollection[models.Account](),
			Doctors:  memstore.NewCollection[models.Doctor](),
			Reviews:  memstore.NewCollection[models.Review](),
			Payments: memstore.NewCollection[models.Payment](),
			Menu:     memstore.NewCollection[models.MenuItem](),
			Carts:    memstore.NewCollection[models.CartItem](),
		},
		tokens:   utils.NewTokenManager(testSecret, time.Hour),
		checkout: &fakeCheckout{},
	}

	s.opts = handlers.Options{Tokens: s.tokens, Checkout: s.checkout}
	for _, fn := range opts {
		fn(&s.opts)
	}
	s.rebuild()
	return s
}

// rebuild rewires the engine, for tests that swap one of the stores.
func (s *testServer) rebuild() {
	h := handlers.NewHandler(s.stores, s.opts)
	s.engine = router.New(h, s.tokens, router.Options{})
}

// do sends body as JSON. A non-empty email adds a bearer token for it.
func (s *testServer) do(method, path string, body any, email string) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if email != "" {
		tok, err := s.tokens.GenerateJWT(email)
		require.NoError(s.t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) seedAccount(email string, role models.Role) {
	s.t.Helper()
	_, err := s.stores.Users.InsertOne(context.Background(), models.Account{Email: email, Role: role})
	require.NoError(s.t, err)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func insertedID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	res := decode[struct {
		InsertedID string `json:"insertedId"`
	}](t, w)
	require.NotEmpty(t, res.InsertedID)
	return res.InsertedID
}
