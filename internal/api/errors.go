package api

import "net/http"

// apiError is the caller-facing error shape. Public errors carry messages
// that are safe to report verbatim; non-public ones are logged as
// unexpected when they cross the response boundary.
type apiError struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
	Public bool   `json:"-"`
}

func (e *apiError) Error() string { return e.Msg }

func newError(status int, msg string, public bool) *apiError {
	return &apiError{Status: status, Msg: msg, Public: public}
}

// internalError logs the underlying failure with full detail and returns
// the generic error surfaced to callers. Upstream and store failures must
// never leak internals.
func (a *API) internalError(err error) *apiError {
	a.logger.Printf("ERROR %v", err)
	return newError(http.StatusInternalServerError, "An unexpected error occurred", true)
}

func (a *API) respondError(w http.ResponseWriter, apiErr *apiError) {
	if !apiErr.Public {
		a.logger.Printf("WARN unexpected request error: %d %s", apiErr.Status, apiErr.Msg)
	}
	respondJSON(w, apiErr.Status, apiErr)
}
