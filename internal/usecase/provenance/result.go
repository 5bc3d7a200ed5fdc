package provenance

import "provenance/internal/errs"

const internalErrorMessage = "internal error"

// Result is the structured outcome every lifecycle operation is reported as at the boundary.
type Result struct {
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
	Kind    errs.Kind `json:"kind,omitempty"`
}

// ResultOf converts an operation error into a Result. Business failures keep their
// message; anything else is reported as an internal error without leaking details.
func ResultOf(err error) Result {
	if err == nil {
		return Result{Success: true}
	}
	msg, ok := errs.Message(err)
	if !ok {
		msg = internalErrorMessage
	}
	return Result{Success: false, Error: msg, Kind: errs.KindOf(err)}
}
