package sink

import (
	"context"
	"fmt"
)

// Options selects and configures a sink.
type Options struct {
	Kind        string
	Dir         string
	Delimiter   string
	SQLitePath  string
	DatabaseURL string
}

// Open creates the sink named by opts.Kind.
func Open(ctx context.Context, opts Options) (Sink, error) {
	switch opts.Kind {
	case KindDat, "":
		return NewDatSink(opts.Dir, opts.Delimiter)
	case KindSQLite:
		return NewSQLiteSink(opts.SQLitePath)
	case KindPostgres:
		return NewPostgresSink(ctx, opts.DatabaseURL)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSink, opts.Kind)
	}
}
