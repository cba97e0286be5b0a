package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abgdnv/storefront/internal/auth"
	"github.com/abgdnv/storefront/pkg/api"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthClient(t *testing.T, handler http.Handler) *auth.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	apiClient, err := api.NewClient(srv.URL, time.Second, newCreds(t), testLogger())
	require.NoError(t, err)
	return auth.NewClient(apiClient)
}

func Test_AuthClient_Register_ReturnsServerMessage(t *testing.T) {
	r := chi.NewRouter()
	var got map[string]string
	r.Post("/auth/signup", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Account created"})
	})
	client := newAuthClient(t, r)

	msg, err := client.Register(context.Background(), "Ada", "ada@example.com", "s3cret")

	require.NoError(t, err)
	assert.Equal(t, "Account created", msg)
	assert.Equal(t, map[string]string{"name": "Ada", "email": "ada@example.com", "password": "s3cret"}, got)
}

func Test_AuthClient_Register_PreservesErrorDetail(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/signup", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Email already registered"})
	})
	client := newAuthClient(t, r)

	_, err := client.Register(context.Background(), "Ada", "ada@example.com", "s3cret")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email already registered")
	assert.Equal(t, http.StatusBadRequest, api.StatusOf(err))
}
