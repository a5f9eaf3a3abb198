package pickups

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/database"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "pickups.db"))
	require.NoError(t, err)
	require.NoError(t, database.MigrateModels(db, New().Models()))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func datetimes(pickups []Pickup) []string {
	out := make([]string, len(pickups))
	for i, p := range pickups {
		out[i] = p.Datetime
	}
	return out
}

func TestListByName_NewestDatetimeFirst(t *testing.T) {
	svc := NewLedgerService(newTestDB(t))
	ctx := context.Background()

	for _, dt := range []string{"2024-01-01", "2024-03-01", "2024-02-01"} {
		_, err := svc.Append(ctx, "Bob", `["box"]`, dt, "sig")
		require.NoError(t, err)
	}

	got, err := svc.ListByName(ctx, "Bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01", "2024-02-01", "2024-01-01"}, datetimes(got))
}

func TestListByName_ExactCaseSensitiveMatch(t *testing.T) {
	svc := NewLedgerService(newTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"Bob", "bob", "Bobby", "Bob "} {
		_, err := svc.Append(ctx, name, "", "2024-01-01", "")
		require.NoError(t, err)
	}

	got, err := svc.ListByName(ctx, "Bob")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bob", got[0].Name)

	none, err := svc.ListByName(ctx, "Carol")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestListAll_OrdersAcrossNames(t *testing.T) {
	svc := NewLedgerService(newTestDB(t))
	ctx := context.Background()

	entries := []struct{ name, dt string }{
		{"Alice", "2024-05-01T09:00"},
		{"Bob", "2024-05-01T10:30"},
		{"Carol", "2023-12-31T23:59"},
		{"Alice", "2024-05-02T08:00"},
	}
	for _, e := range entries {
		_, err := svc.Append(ctx, e.name, "", e.dt, "")
		require.NoError(t, err)
	}

	got, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024-05-02T08:00",
		"2024-05-01T10:30",
		"2024-05-01T09:00",
		"2023-12-31T23:59",
	}, datetimes(got))
}

func TestListAll_LexicographicNotChronological(t *testing.T) {
	svc := NewLedgerService(newTestDB(t))
	ctx := context.Background()

	for _, dt := range []string{"9/1/2024", "10/1/2024"} {
		_, err := svc.Append(ctx, "Dan", "", dt, "")
		require.NoError(t, err)
	}

	got, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"9/1/2024", "10/1/2024"}, datetimes(got))
}

func TestAppend_DuplicatesAreKept(t *testing.T) {
	svc := NewLedgerService(newTestDB(t))
	ctx := context.Background()

	a, err := svc.Append(ctx, "Bob", "x", "2024-01-01", "sig")
	require.NoError(t, err)
	b, err := svc.Append(ctx, "Bob", "x", "2024-01-01", "sig")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	got, err := svc.ListByName(ctx, "Bob")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID, "later insert wins ties on datetime")
}

func TestAppend_StoresLargeSignature(t *testing.T) {
	svc := NewLedgerService(newTestDB(t))
	ctx := context.Background()

	sig := "data:image/png;base64," + strings.Repeat("iVBORw0KGgo", 200_000)
	_, err := svc.Append(ctx, "Eve", "", "2024-01-01", sig)
	require.NoError(t, err)

	got, err := svc.ListByName(ctx, "Eve")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sig, got[0].Signature)
}

func TestStorageFailuresAreWrapped(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	require.NoError(t, db.Migrator().DropTable(&Pickup{}))

	_, err := svc.Append(context.Background(), "Bob", "", "2024-01-01", "")
	assert.ErrorIs(t, err, services.ErrStorage)

	_, err = svc.ListAll(context.Background())
	assert.ErrorIs(t, err, services.ErrStorage)
}
