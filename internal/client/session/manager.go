// Package session manages the persisted login session: the access/refresh
// token pair and the account email, encrypted at rest in the local vault
// under fixed keys.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mvolkov/tastebook/internal/client/models"
	"github.com/mvolkov/tastebook/internal/client/repositories/vault"
	"github.com/mvolkov/tastebook/internal/cryptox"
	"github.com/mvolkov/tastebook/internal/dbx"
)

// Fixed vault keys. Changing these orphans previously stored sessions.
const (
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
	keyEmail        = "email"
)

// Manager reads and writes the session through the vault, sealing every
// value with the derived vault key. Multi-key writes run in a transaction
// so the token pair can never end up half-replaced. It implements
// api.TokenStore.
type Manager struct {
	db  *sql.DB
	key []byte
}

func NewManager(db *sql.DB, key []byte) *Manager {
	return &Manager{db: db, key: key}
}

func (m *Manager) get(ctx context.Context, key string) (string, error) {
	sealed, err := vault.NewSQLiteRepository(m.db).Get(ctx, key)
	if err != nil {
		return "", err
	}
	if sealed == nil {
		return "", nil
	}
	plain, err := cryptox.Open(sealed, m.key)
	if err != nil {
		return "", fmt.Errorf("unseal %s: %w", key, err)
	}
	return string(plain), nil
}

func (m *Manager) set(ctx context.Context, repo vault.Repository, key, value string) error {
	sealed, err := cryptox.Seal([]byte(value), m.key)
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return repo.Set(ctx, key, sealed)
}

// AccessToken returns the stored access token, empty when logged out.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	return m.get(ctx, keyAccessToken)
}

// RefreshToken returns the stored refresh token, empty when logged out.
func (m *Manager) RefreshToken(ctx context.Context) (string, error) {
	return m.get(ctx, keyRefreshToken)
}

// SaveTokens persists a new token pair, replacing any previous one. Both
// writes commit together.
func (m *Manager) SaveTokens(ctx context.Context, accessToken, refreshToken string) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := vault.NewSQLiteRepository(tx)
		if err := m.set(ctx, repo, keyAccessToken, accessToken); err != nil {
			return err
		}
		return m.set(ctx, repo, keyRefreshToken, refreshToken)
	})
}

// SaveEmail persists the account email shown in the CLI prompt.
func (m *Manager) SaveEmail(ctx context.Context, email string) error {
	return m.set(ctx, vault.NewSQLiteRepository(m.db), keyEmail, email)
}

func (m *Manager) Email(ctx context.Context) (string, error) {
	return m.get(ctx, keyEmail)
}

// Current reconstructs the persisted session, or nil when none is stored.
// The expiry is recovered from the access token's exp claim since the
// vault does not store it separately.
func (m *Manager) Current(ctx context.Context) (*models.Session, error) {
	access, err := m.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if access == "" {
		return nil, nil
	}
	refresh, err := m.RefreshToken(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    tokenExpiry(access),
	}, nil
}

// Clear wipes the stored session on logout, all keys in one transaction.
func (m *Manager) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := vault.NewSQLiteRepository(tx)
		for _, key := range []string{keyAccessToken, keyRefreshToken, keyEmail} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

// tokenExpiry extracts the exp claim without verifying the signature; the
// client never trusts the token beyond scheduling, the server verifies it.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time.UTC()
}
