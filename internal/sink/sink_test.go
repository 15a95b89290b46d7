package sink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auctionload/internal/models"
)

func TestDecodeRow_Items(t *testing.T) {
	tbl, err := lookupTable(models.RelationItems)
	require.NoError(t, err)

	row := []string{
		"100", `"12"" Ruler"`, "12.00", "1.00", "3", "NULL",
		"2013-12-10 09:00:00", "2013-12-20 09:00:00", "u1", "NULL",
	}

	values, err := decodeRow(tbl, row, true)
	require.NoError(t, err)

	assert.Equal(t, "100", values[0])
	assert.Equal(t, `12" Ruler`, values[1])
	assert.Equal(t, "12.00", values[2])
	assert.Equal(t, int64(3), values[4])
	assert.Nil(t, values[5])
	assert.Equal(t, time.Date(2013, 12, 10, 9, 0, 0, 0, time.UTC), values[6])
	assert.Nil(t, values[9])
}

func TestDecodeRow_TimeAsText(t *testing.T) {
	tbl, err := lookupTable(models.RelationBids)
	require.NoError(t, err)

	values, err := decodeRow(tbl, []string{"1", "u", "Xyz-01-13 00:00:00", "5"}, false)
	require.NoError(t, err)
	assert.Equal(t, "Xyz-01-13 00:00:00", values[2])
}

func TestDecodeRow_RawFieldsVerbatim(t *testing.T) {
	bids, err := lookupTable(models.RelationBids)
	require.NoError(t, err)

	values, err := decodeRow(bids, []string{"NULL", `"u2"`, "2013-12-15 10:30:00", "NULL"}, false)
	require.NoError(t, err)
	assert.Equal(t, "NULL", values[0])
	assert.Equal(t, `"u2"`, values[1])
	assert.Nil(t, values[3])

	cats, err := lookupTable(models.RelationCategories)
	require.NoError(t, err)

	values, err = decodeRow(cats, []string{"100", `"Antiques"`}, false)
	require.NoError(t, err)
	assert.Equal(t, `"Antiques"`, values[1])
}

func TestDecodeRow_Errors(t *testing.T) {
	users, err := lookupTable(models.RelationUsers)
	require.NoError(t, err)

	_, err = decodeRow(users, []string{`"u"`, "1"}, true)
	assert.ErrorIs(t, err, ErrColumnCount)

	_, err = decodeRow(users, []string{`"u"`, "high", "NULL", "NULL"}, true)
	assert.Error(t, err)

	_, err = lookupTable("sellers")
	assert.ErrorIs(t, err, ErrUnknownRelation)
}

func TestPostgresRows_Numeric(t *testing.T) {
	tbl, err := lookupTable(models.RelationBids)
	require.NoError(t, err)

	rows, err := postgresRows(tbl, [][]string{
		{"1", "u", "2013-12-15 10:30:00", "3453.23"},
		{"1", "u", "2013-12-15 10:31:00", "NULL"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	amount, ok := rows[0][3].(pgtype.Numeric)
	require.True(t, ok)
	assert.True(t, amount.Valid)
	assert.Equal(t, int64(345323), amount.Int.Int64())
	assert.Equal(t, int32(-2), amount.Exp)

	missing, ok := rows[1][3].(pgtype.Numeric)
	require.True(t, ok)
	assert.False(t, missing.Valid)

	_, ok = rows[0][2].(time.Time)
	assert.True(t, ok)
}

type failingSink struct {
	written []string
}

func (f *failingSink) WriteRelation(_ context.Context, name string, _ [][]string) error {
	f.written = append(f.written, name)
	if name == models.RelationUsers {
		return errors.New("disk full")
	}

	return nil
}

func (f *failingSink) Close() error { return nil }

func TestWriteAll_StopsOnError(t *testing.T) {
	fs := &failingSink{}
	rels := []models.Relation{
		{Name: models.RelationItems},
		{Name: models.RelationUsers},
		{Name: models.RelationCategories},
	}

	err := WriteAll(context.Background(), fs, rels)

	var swe *SinkWriteError
	require.ErrorAs(t, err, &swe)
	assert.Equal(t, models.RelationUsers, swe.Relation)
	assert.Equal(t, []string{models.RelationItems, models.RelationUsers}, fs.written)
}

func TestOpen_UnknownKind(t *testing.T) {
	_, err := Open(context.Background(), Options{Kind: "parquet"})
	assert.ErrorIs(t, err, ErrUnknownSink)
}
