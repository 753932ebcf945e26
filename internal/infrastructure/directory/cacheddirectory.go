package directory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"numbers/internal/domain/account"
	"numbers/internal/shared/config"
	"numbers/internal/shared/logger"
)

const (
	directoryKeyPrefix = "numbers:directory:"
	defaultAccountTTL  = 60 * time.Second
	// Short TTL for confirmed-missing accounts so repeated reassignment
	// attempts do not hammer the directory.
	notFoundTTL = 30 * time.Second
)

type cachedAccount struct {
	VendorID        string `json:"vendor_id"`
	AccountID       string `json:"account_id"`
	ParentAccountID string `json:"parent_account_id"`
	Type            string `json:"type"`
	NotFound        bool   `json:"not_found,omitempty"`
}

// CachedDirectory wraps another directory with a Redis lookaside cache.
// Cache failures degrade to direct lookups, never to request failures.
type CachedDirectory struct {
	inner  account.Directory
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

var _ account.Directory = (*CachedDirectory)(nil)

func NewCachedDirectory(inner account.Directory, client *redis.Client, cfg config.DirectoryConfig, log logger.Interface) *CachedDirectory {
	ttl := defaultAccountTTL
	if cfg.CacheTTLSecs > 0 {
		ttl = time.Duration(cfg.CacheTTLSecs) * time.Second
	}

	return &CachedDirectory{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: log.Named("directory-cache"),
	}
}

func (d *CachedDirectory) GetAccount(ctx context.Context, id account.VendorAccountID) (account.Account, error) {
	key := directoryKeyPrefix + id.String()

	raw, err := d.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var cached cachedAccount
		if unmarshalErr := json.Unmarshal([]byte(raw), &cached); unmarshalErr == nil {
			if cached.NotFound {
				return account.Account{}, account.ErrAccountNotFound
			}
			return account.Account{
				ID:              account.NewVendorAccountID(cached.VendorID, cached.AccountID),
				ParentAccountID: cached.ParentAccountID,
				Type:            account.Type(cached.Type),
			}, nil
		}
		d.logger.Warnw("dropping malformed directory cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		d.logger.Warnw("directory cache read failed", "key", key, "error", err)
	}

	acct, err := d.inner.GetAccount(ctx, id)
	if errors.Is(err, account.ErrAccountNotFound) {
		d.store(ctx, key, cachedAccount{NotFound: true}, notFoundTTL)
		return account.Account{}, err
	}
	if err != nil {
		return account.Account{}, err
	}

	d.store(ctx, key, cachedAccount{
		VendorID:        acct.ID.VendorID,
		AccountID:       acct.ID.AccountID,
		ParentAccountID: acct.ParentAccountID,
		Type:            string(acct.Type),
	}, d.ttl)

	return acct, nil
}

func (d *CachedDirectory) store(ctx context.Context, key string, entry cachedAccount, ttl time.Duration) {
	data, err := json.Marshal(entry)
	if err != nil {
		d.logger.Warnw("failed to marshal directory cache entry", "key", key, "error", err)
		return
	}

	if err := d.client.Set(ctx, key, data, ttl).Err(); err != nil {
		d.logger.Warnw("directory cache write failed", "key", key, "error", err)
	}
}
