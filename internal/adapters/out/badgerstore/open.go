// Package badgerstore is the embedded store: donations, users and push
// subscriptions as JSON records in badger, with badger's optimistic
// transactions standing in for the relational conditional update.
//
// Keys:
//
//	donation/<uuid>        donation record
//	tracking/<trackingID>  donation uuid, keeps tracking ids unique
//	seq/<YYYYMMDD>         per-day tracking counter
//	user/<uuid>            profile record
//	push/<endpoint>        push subscription record
package badgerstore

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Open opens the store at path. An empty path keeps everything in memory.
func Open(path string, log *slog.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(slogAdapter{log: log.With("component", "badger")})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	return db, nil
}

// slogAdapter satisfies badger.Logger. Badger logs a lot at info level, so
// info is demoted to debug.
type slogAdapter struct {
	log *slog.Logger
}

func (a slogAdapter) Errorf(format string, args ...any) {
	a.log.Error(trim(format, args))
}

func (a slogAdapter) Warningf(format string, args ...any) {
	a.log.Warn(trim(format, args))
}

func (a slogAdapter) Infof(format string, args ...any) {
	a.log.Debug(trim(format, args))
}

func (a slogAdapter) Debugf(format string, args ...any) {
	a.log.Debug(trim(format, args))
}

func trim(format string, args []any) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
