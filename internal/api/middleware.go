package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is the wire envelope version. Bump only on breaking
// envelope changes; the client pins this value.
const envelopeVersion = 1

// successEnvelope wraps successful response bodies.
type successEnvelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// simpleErrorEnvelope wraps plain error responses.
type simpleErrorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// detailedErrorEnvelope wraps error responses that carry a machine-readable
// code and optional field details.
type detailedErrorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every response body in the versioned envelope.
// Success bodies become {v, success, data}; errors with a code become
// {v, success, code, message, details}, errors without one {v, success, error}.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	switch e := v.(type) {
	case *APIError:
		if e.Code != "" {
			return &detailedErrorEnvelope{
				V:       envelopeVersion,
				Success: false,
				Code:    e.Code,
				Message: e.Message,
				Details: e.Details,
			}, nil
		}
		return &simpleErrorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   e.Message,
		}, nil
	case error:
		return &simpleErrorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   e.Error(),
		}, nil
	}

	if !strings.HasPrefix(status, "2") && v != nil {
		// Non-2xx body that is not an error value. Should not happen with
		// our handlers, but do not mislabel it as success.
		return &simpleErrorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   "request failed",
		}, nil
	}

	return &successEnvelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
