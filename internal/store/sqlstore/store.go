package sqlstore

import (
	"database/sql"
	"encoding/base64"
	"errors"
	"strconv"
)

var errMessageWithoutOwner = errors.New("message has no owner")

// SQLStore implements store.Store on top of a SQL database.
type SQLStore struct {
	db *sql.DB
}

// New creates a SQLStore around an already-migrated database handle.
func New(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

const defaultPageSize = 50

// Continuation tokens are opaque to clients: the base64 of the last id seen
// on the previous page. Garbage tokens restart from the beginning rather
// than failing the request.
func encodeCursor(lastID int64) string {
	return base64.URLEncoding.EncodeToString([]byte(strconv.FormatInt(lastID, 10)))
}

func decodeCursor(cursor string) int64 {
	if cursor == "" {
		return 0
	}
	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return 0
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func pageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	return limit
}
