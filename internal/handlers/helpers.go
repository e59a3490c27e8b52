package handlers

import (
	"errors"
	"net/http"
	"strconv"
)

var errInvalidQuery = errors.New("invalid query parameter")

// queryInt reads an integer query parameter, returning def when it is absent
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidQuery
	}
	return v, nil
}

// queryID reads an optional int64 query parameter. Absent yields nil.
func queryID(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errInvalidQuery
	}
	return &v, nil
}
