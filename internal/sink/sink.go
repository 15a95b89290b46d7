// Package sink writes normalized relations to their destination.
package sink

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"auctionload/internal/models"
	"auctionload/internal/normalizer"
)

// Supported sink kinds.
const (
	KindDat      = "dat"
	KindSQLite   = "sqlite"
	KindPostgres = "postgres"
)

// Sink errors.
var (
	ErrUnknownRelation = errors.New("unknown relation")
	ErrColumnCount     = errors.New("row has wrong number of fields")
	ErrUnknownSink     = errors.New("unknown sink kind")
)

// timeLayout is the normalized timestamp form produced by the normalizer.
const timeLayout = "2006-01-02 15:04:05"

// Sink receives finished relations. Writing a relation replaces whatever a
// previous run stored for it.
type Sink interface {
	WriteRelation(ctx context.Context, name string, rows [][]string) error
	Close() error
}

// SinkWriteError wraps any failure raised while writing a relation.
type SinkWriteError struct {
	Relation string
	Err      error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("writing relation %s: %v", e.Relation, e.Err)
}

func (e *SinkWriteError) Unwrap() error {
	return e.Err
}

func writeErr(relation string, err error) error {
	return &SinkWriteError{Relation: relation, Err: err}
}

// WriteAll hands every relation to s in order.
func WriteAll(ctx context.Context, s Sink, rels []models.Relation) error {
	for _, rel := range rels {
		if err := s.WriteRelation(ctx, rel.Name, rel.Rows); err != nil {
			var swe *SinkWriteError
			if errors.As(err, &swe) {
				return err
			}

			return writeErr(rel.Name, err)
		}
	}

	return nil
}

// columnKind tells database sinks how to convert a field.
type columnKind int

const (
	kindText columnKind = iota
	kindInt
	kindMoney
	kindTime
)

// column describes one relation field. escaped marks fields that the
// normalizer wrote through its quote transform.
type column struct {
	name    string
	kind    columnKind
	escaped bool
}

type table struct {
	name    string
	columns []column
}

// tables describes the relational schema for each relation.
var tables = map[string]table{
	models.RelationItems: {name: "Items", columns: []column{
		{"ItemID", kindText, false}, {"Name", kindText, true}, {"Currently", kindMoney, false},
		{"First_Bid", kindMoney, false}, {"Number_of_Bids", kindInt, false}, {"Buy_Price", kindMoney, false},
		{"Started", kindTime, false}, {"Ends", kindTime, false}, {"UserID", kindText, false},
		{"Description", kindText, true},
	}},
	models.RelationUsers: {name: "Users", columns: []column{
		{"UserID", kindText, true}, {"Rating", kindInt, false}, {"Location", kindText, true}, {"Country", kindText, true},
	}},
	models.RelationCategories: {name: "Categories", columns: []column{
		{"ItemID", kindText, false}, {"Category", kindText, false},
	}},
	models.RelationBids: {name: "Bids", columns: []column{
		{"ItemID", kindText, false}, {"UserID", kindText, false}, {"Time", kindTime, false}, {"Amount", kindMoney, false},
	}},
}

func lookupTable(relation string) (table, error) {
	t, ok := tables[relation]
	if !ok {
		return table{}, fmt.Errorf("%w: %s", ErrUnknownRelation, relation)
	}

	return t, nil
}

// decodeField turns an output field back into a database value. Escaped
// fields lose their quoting and the NULL marker becomes nil; a money field
// holding the marker or nothing is nil too. Other fields are taken verbatim.
// Timestamps are parsed only when parseTimes is set.
func decodeField(c column, raw string, parseTimes bool) (any, error) {
	s := raw
	if c.escaped {
		unescaped, ok := normalizer.UnescapeQuote(raw)
		if !ok {
			return nil, nil
		}

		s = unescaped
	}

	switch c.kind {
	case kindInt:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.name, err)
		}

		return n, nil
	case kindMoney:
		if s == "" || s == models.NullMarker {
			return nil, nil
		}

		return s, nil
	case kindTime:
		if !parseTimes {
			return s, nil
		}

		ts, err := time.Parse(timeLayout, s)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.name, err)
		}

		return ts, nil
	default:
		return s, nil
	}
}

func decodeRow(t table, row []string, parseTimes bool) ([]any, error) {
	if len(row) != len(t.columns) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrColumnCount, len(row), len(t.columns))
	}

	values := make([]any, len(row))

	for i, c := range t.columns {
		v, err := decodeField(c, row[i], parseTimes)
		if err != nil {
			return nil, err
		}

		values[i] = v
	}

	return values, nil
}
