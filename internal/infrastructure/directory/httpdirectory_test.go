package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numbers/internal/domain/account"
	"numbers/internal/infrastructure/auth"
	"numbers/internal/shared/config"
	"numbers/internal/shared/logger"
)

func newTestDirectory(t *testing.T, handler http.HandlerFunc) (*HTTPDirectory, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	jwtService := auth.NewJWTService(config.JWTConfig{Secret: "test-secret", Issuer: "numbers-test"})
	d := NewHTTPDirectory(config.DirectoryConfig{BaseURL: server.URL}, jwtService, logger.NewLogger())
	return d, server
}

func TestHTTPDirectory_GetAccount(t *testing.T) {
	var gotPath, gotAuth string
	d, _ := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"vendor_id": "vendor-1",
			"account_id": "acct-7",
			"parent_account_id": "acct-parent",
			"type": "CUSTOMER"
		}`))
	})

	acct, err := d.GetAccount(context.Background(), account.NewVendorAccountID("vendor-1", "acct-7"))
	require.NoError(t, err)

	assert.Equal(t, "/v1/vendors/vendor-1/accounts/acct-7", gotPath)
	assert.True(t, strings.HasPrefix(gotAuth, "Bearer "), "request must carry a bearer token")
	assert.Equal(t, account.NewVendorAccountID("vendor-1", "acct-7"), acct.ID)
	assert.Equal(t, "acct-parent", acct.ParentAccountID)
	assert.Equal(t, account.TypeCustomer, acct.Type)
}

func TestHTTPDirectory_GetAccount_NotFound(t *testing.T) {
	d, _ := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := d.GetAccount(context.Background(), account.NewVendorAccountID("vendor-1", "missing"))
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestHTTPDirectory_GetAccount_UpstreamError(t *testing.T) {
	d, _ := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := d.GetAccount(context.Background(), account.NewVendorAccountID("vendor-1", "acct-7"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, account.ErrAccountNotFound)
}

func TestHTTPDirectory_ReusesServiceToken(t *testing.T) {
	tokens := make(map[string]bool)
	d, _ := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		tokens[r.Header.Get("Authorization")] = true
		_, _ = w.Write([]byte(`{"vendor_id": "v", "account_id": "a", "type": "CUSTOMER"}`))
	})

	for i := 0; i < 3; i++ {
		_, err := d.GetAccount(context.Background(), account.NewVendorAccountID("v", "a"))
		require.NoError(t, err)
	}

	assert.Len(t, tokens, 1, "the service token is cached until close to expiry")
}
