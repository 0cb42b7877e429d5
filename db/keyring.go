package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "storefront"
	keyringUser    = "credential-pair"
)

// keyringTokenRepo stores the credential pair in the OS keyring instead of
// the local database. The pair is serialized as a single JSON blob so a
// refresh replaces both tokens in one write.
type keyringTokenRepo struct{}

// NewKeyringTokenRepository creates a TokenRepository backed by the OS keyring.
// Selected with STOREFRONT_KEYRING=1 for users who prefer not to keep bearer
// tokens in a plain SQLite file.
func NewKeyringTokenRepository() TokenRepository { return &keyringTokenRepo{} }

func (r *keyringTokenRepo) Get(ctx context.Context) (*Token, error) {
	blob, err := keyring.Get(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials from keyring: %w", err)
	}
	var token Token
	if err := json.Unmarshal([]byte(blob), &token); err != nil {
		return nil, fmt.Errorf("failed to parse keyring credentials: %w", err)
	}
	return &token, nil
}

func (r *keyringTokenRepo) Upsert(ctx context.Context, token *Token) error {
	blob, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to serialize credentials: %w", err)
	}
	if err := keyring.Set(keyringService, keyringUser, string(blob)); err != nil {
		return fmt.Errorf("failed to write credentials to keyring: %w", err)
	}
	return nil
}

func (r *keyringTokenRepo) Clear(ctx context.Context) error {
	err := keyring.Delete(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}
