package client

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/watchlist/internal/common"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets callers match 401 answers with common.ErrorUnauthorized.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return common.ErrorUnauthorized
	}
	return nil
}
