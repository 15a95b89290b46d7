package sink

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auctionload/internal/models"
)

// setupSQLiteSink creates a temporary SQLite sink for testing.
func setupSQLiteSink(t *testing.T) *SQLiteSink {
	t.Helper()

	s, err := NewSQLiteSink(filepath.Join(t.TempDir(), "db", "auctions.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})

	return s
}

func TestSQLiteSink_WriteRelation(t *testing.T) {
	s := setupSQLiteSink(t)
	ctx := context.Background()

	users := [][]string{
		{`"u1"`, "42", `"Boston"`, `"USA"`},
		{`"u""2"`, "7", "NULL", "NULL"},
	}
	require.NoError(t, s.WriteRelation(ctx, models.RelationUsers, users))

	n, err := s.Count(ctx, models.RelationUsers)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var location *string
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT Location FROM Users WHERE UserID = ?`, `u"2`).Scan(&location))
	assert.Nil(t, location)

	var rating int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT Rating FROM Users WHERE UserID = ?`, "u1").Scan(&rating))
	assert.Equal(t, 42, rating)
}

func TestSQLiteSink_ReplacesPreviousRows(t *testing.T) {
	s := setupSQLiteSink(t)
	ctx := context.Background()

	first := [][]string{{"1", "u", "2013-12-15 10:30:00", "1.00"}, {"1", "u", "2013-12-15 10:30:00", "1.00"}}
	require.NoError(t, s.WriteRelation(ctx, models.RelationBids, first))
	require.NoError(t, s.WriteRelation(ctx, models.RelationBids, first[:1]))

	n, err := s.Count(ctx, models.RelationBids)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var ts string
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT Time FROM Bids`).Scan(&ts))
	assert.Equal(t, "2013-12-15 10:30:00", ts)
}

func TestSQLiteSink_RawIDsStoredVerbatim(t *testing.T) {
	s := setupSQLiteSink(t)
	ctx := context.Background()

	require.NoError(t, s.WriteRelation(ctx, models.RelationBids, [][]string{
		{"NULL", `"quoted"`, "2013-12-15 10:30:00", "1.00"},
	}))
	require.NoError(t, s.WriteRelation(ctx, models.RelationCategories, [][]string{
		{"100", `Dolls "Vintage"`},
	}))

	var itemID, userID string
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT ItemID, UserID FROM Bids`).Scan(&itemID, &userID))
	assert.Equal(t, "NULL", itemID)
	assert.Equal(t, `"quoted"`, userID)

	var category string
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT Category FROM Categories WHERE ItemID = ?`, "100").Scan(&category))
	assert.Equal(t, `Dolls "Vintage"`, category)
}

func TestSQLiteSink_MigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auctions.db")

	first, err := NewSQLiteSink(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewSQLiteSink(path)
	require.NoError(t, err)
	defer second.Close()

	var version int
	require.NoError(t, second.db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&version))
	assert.Equal(t, 1, version)
}

func TestSQLiteSink_BadRowIsWriteError(t *testing.T) {
	s := setupSQLiteSink(t)

	err := s.WriteRelation(context.Background(), models.RelationUsers, [][]string{{`"u1"`}})

	var swe *SinkWriteError
	require.ErrorAs(t, err, &swe)
	assert.ErrorIs(t, err, ErrColumnCount)
}
