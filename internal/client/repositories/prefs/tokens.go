package prefs

import (
	"context"
	"errors"

	"github.com/eventkeeper/eventkeeper/internal/common"
)

// TokenStore adapts a prefs Repository to the backend's token persistence
// contract.
type TokenStore struct {
	repo Repository
}

func NewTokenStore(repo Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// LoadTokens returns the cached token pair, or empty strings when no session
// is cached.
func (t *TokenStore) LoadTokens(ctx context.Context) (string, string, error) {
	access, err := t.repo.Get(ctx, AccessTokenKey)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return "", "", err
	}
	refresh, err := t.repo.Get(ctx, RefreshTokenKey)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return "", "", err
	}
	return access, refresh, nil
}

func (t *TokenStore) SaveTokens(ctx context.Context, access, refresh string) error {
	if err := t.repo.Set(ctx, AccessTokenKey, access); err != nil {
		return err
	}
	return t.repo.Set(ctx, RefreshTokenKey, refresh)
}

func (t *TokenStore) ClearTokens(ctx context.Context) error {
	if err := t.repo.Delete(ctx, AccessTokenKey); err != nil {
		return err
	}
	return t.repo.Delete(ctx, RefreshTokenKey)
}
