package services

import (
	"path/filepath"
	"testing"

	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/database"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.MigrateShared(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestAuthService(t *testing.T) (*AuthService, *UserStore, *TokenIssuer) {
	t.Helper()
	users := NewUserStore(newTestDB(t))
	tokens, err := NewTokenIssuer([]byte("test-secret"))
	require.NoError(t, err)
	return NewAuthService(users, NewPasswordHasher(bcrypt.MinCost), tokens), users, tokens
}
