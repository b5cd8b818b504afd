package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

const defaultDisplayMessage = "An unexpected error occurred"

// ErrorResponse is the body of every failed API request
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Display       string         `json:"message"`
	InternalError string         `json:"internal_error,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}

// NewErrorResponse renders err for a client. The display message is the
// innermost hint and details come only from WithReportableDetails payloads.
// The raw error text is attached only when exposeInternal is set.
func NewErrorResponse(err error, exposeInternal bool) ErrorResponse {
	resp := ErrorResponse{
		Error: ErrorDetail{
			Display: displayMessage(err),
			Details: reportableDetails(err),
		},
	}
	if exposeInternal && err != nil {
		resp.Error.InternalError = err.Error()
	}
	return resp
}

func displayMessage(err error) string {
	// GetAllHints walks the chain inside out
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return defaultDisplayMessage
}

func reportableDetails(err error) map[string]any {
	details := make(map[string]any)
	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			raw, ok := strings.CutPrefix(payload, reportablePrefix)
			if !ok {
				continue
			}
			var fields map[string]any
			if json.Unmarshal([]byte(raw), &fields) == nil {
				for k, v := range fields {
					details[k] = v
				}
			}
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}
