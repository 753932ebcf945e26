// Package directory provides clients for the platform account directory,
// the source of truth for the vendor account hierarchy.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"numbers/internal/domain/account"
	"numbers/internal/infrastructure/auth"
	"numbers/internal/shared/config"
	"numbers/internal/shared/logger"
)

const (
	defaultRequestTimeout = 5 * time.Second
	serviceTokenTTL       = 5 * time.Minute
	// Renew the cached service token a minute before it expires.
	serviceTokenSlack = time.Minute
	// Account payloads are tiny; anything bigger is a broken upstream.
	maxAccountResponseSize = 64 << 10
)

type accountResponse struct {
	VendorID        string `json:"vendor_id"`
	AccountID       string `json:"account_id"`
	ParentAccountID string `json:"parent_account_id"`
	Type            string `json:"type"`
}

// HTTPDirectory implements account.Directory against the directory
// service's REST API, authenticating with a short-lived service token.
type HTTPDirectory struct {
	baseURL    string
	httpClient *http.Client
	jwtService *auth.JWTService
	logger     logger.Interface

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

var _ account.Directory = (*HTTPDirectory)(nil)

func NewHTTPDirectory(cfg config.DirectoryConfig, jwtService *auth.JWTService, log logger.Interface) *HTTPDirectory {
	timeout := defaultRequestTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return &HTTPDirectory{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		jwtService: jwtService,
		logger:     log.Named("directory"),
	}
}

func (d *HTTPDirectory) GetAccount(ctx context.Context, id account.VendorAccountID) (account.Account, error) {
	endpoint := fmt.Sprintf("%s/v1/vendors/%s/accounts/%s",
		d.baseURL, url.PathEscape(id.VendorID), url.PathEscape(id.AccountID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return account.Account{}, fmt.Errorf("failed to build directory request: %w", err)
	}

	token, err := d.serviceToken()
	if err != nil {
		return account.Account{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return account.Account{}, fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return account.Account{}, account.ErrAccountNotFound
	default:
		d.logger.Warnw("unexpected directory response",
			"status", resp.StatusCode, "vendor_id", id.VendorID, "account_id", id.AccountID)
		return account.Account{}, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAccountResponseSize))
	if err != nil {
		return account.Account{}, fmt.Errorf("failed to read directory response: %w", err)
	}

	var payload accountResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return account.Account{}, fmt.Errorf("failed to decode directory response: %w", err)
	}

	acct := account.Account{
		ID:              account.NewVendorAccountID(payload.VendorID, payload.AccountID),
		ParentAccountID: payload.ParentAccountID,
		Type:            account.Type(payload.Type),
	}
	if acct.ID.IsZero() {
		return account.Account{}, fmt.Errorf("directory returned an account without identity")
	}

	return acct, nil
}

func (d *HTTPDirectory) serviceToken() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.token != "" && time.Now().Before(d.tokenExpiry.Add(-serviceTokenSlack)) {
		return d.token, nil
	}

	token, err := d.jwtService.GenerateServiceToken("numbers", serviceTokenTTL)
	if err != nil {
		return "", err
	}

	d.token = token
	d.tokenExpiry = time.Now().Add(serviceTokenTTL)
	return token, nil
}
