package shopfront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnorrell/shopfront/api"
)

// fakeBackend serves the handful of endpoints the wired App touches
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	cartState := api.Cart{ID: 1, UserID: 7}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/categories/viewAll", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]api.Category{{ID: 1, Name: "Electronics"}})
	})
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("server-jwt-token"))
	})
	mux.HandleFunc("GET /api/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer server-jwt-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Full authentication is required to access this resource"))
			return
		}
		_ = json.NewEncoder(w).Encode(api.User{ID: 7, Email: "u@example.com", FirstName: "Grace"})
	})
	mux.HandleFunc("GET /api/v1/cartItems/view", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(cartState)
	})
	mux.HandleFunc("POST /api/v1/cartItems/add", func(w http.ResponseWriter, r *http.Request) {
		var req api.AddCartItemRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		cartState.Items = append(cartState.Items, api.CartItem{
			ID: int64(len(cartState.Items) + 1), ProductID: req.ProductID, Price: 25.00, Quantity: req.Quantity,
		})
		_ = json.NewEncoder(w).Encode(api.StatusResponse{Success: true})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	app, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = app.Close()
	})
	return app
}

func TestAppLoginFlow(t *testing.T) {
	server := fakeBackend(t)
	app := newApp(t,
		WithBaseURL(server.URL),
		WithMockLatency(time.Millisecond),
		WithTelemetry(false),
		WithLogLevel("error"),
	)

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))
	require.True(t, app.API.Available())

	require.NoError(t, app.Session.Login(ctx, "u@example.com", "pw"))
	assert.True(t, app.Session.Authenticated())
	require.NotNil(t, app.Session.User())
	assert.Equal(t, "Grace", app.Session.User().FirstName)

	// Login triggers a background cart refresh through the subscription
	require.Eventually(t, func() bool {
		return app.Cart.Snapshot() != nil
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, app.Cart.AddItem(ctx, 3, 2))
	assert.Equal(t, 2, app.Cart.Count())
	assert.Equal(t, 50.00, app.Cart.Total())

	app.Session.Logout(ctx)
	assert.False(t, app.Session.Authenticated())
	assert.Nil(t, app.Cart.Snapshot(), "logout clears the cart before returning")
	assert.Equal(t, 0, app.Cart.Count())
}

func TestAppOfflineFallback(t *testing.T) {
	// Nothing listens here, so the probe fails and mock data takes over
	app := newApp(t,
		WithBaseURL("http://127.0.0.1:1"),
		WithProbeTimeout(200*time.Millisecond),
		WithMockLatency(time.Millisecond),
		WithTelemetry(false),
		WithLogLevel("error"),
	)

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))
	assert.False(t, app.API.Available())

	products, err := app.API.GetProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 8)

	require.NoError(t, app.Session.Login(ctx, "anyone@example.com", "pw"))
	assert.True(t, app.Session.Authenticated())
}

func TestAppResumesSessionFromRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	server := fakeBackend(t)
	redisURL := "redis://" + mr.Addr()

	first := newApp(t,
		WithBaseURL(server.URL),
		WithRedisURL(redisURL),
		WithMockLatency(time.Millisecond),
		WithTelemetry(false),
		WithLogLevel("error"),
	)
	ctx := context.Background()
	require.NoError(t, first.Start(ctx))
	require.NoError(t, first.Session.Login(ctx, "u@example.com", "pw"))
	require.NoError(t, first.Close())

	// A fresh App against the same Redis picks the session back up
	second := newApp(t,
		WithBaseURL(server.URL),
		WithRedisURL(redisURL),
		WithMockLatency(time.Millisecond),
		WithTelemetry(false),
		WithLogLevel("error"),
	)
	require.NoError(t, second.Start(ctx))
	assert.True(t, second.Session.Authenticated())
	require.NotNil(t, second.Session.User())
	assert.Equal(t, "Grace", second.Session.User().FirstName)
}
