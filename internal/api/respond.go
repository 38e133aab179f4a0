package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	rgerrors "github.com/matzehuels/roomgrow/pkg/errors"
	"github.com/matzehuels/roomgrow/pkg/observability"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and writes the error envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	writeJSON(w, statusFor(err), newErrorBody(err))
}

func newErrorBody(err error) errorBody {
	code := rgerrors.GetCode(err)
	if code == "" {
		code = rgerrors.ErrCodeInternal
	}
	return errorBody{Error: errorDetail{Code: string(code), Message: rgerrors.UserMessage(err)}}
}

func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	switch rgerrors.GetCode(err) {
	case rgerrors.ErrCodeInvalidInput, rgerrors.ErrCodeInvalidFootprint, rgerrors.ErrCodeInvalidFormat,
		rgerrors.ErrCodeInvalidConfig, rgerrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case rgerrors.ErrCodeNotFound, rgerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case rgerrors.ErrCodeNoFootprints:
		return http.StatusUnprocessableEntity
	case rgerrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// readBodyJSON decodes a size-limited JSON body into out. An empty body
// leaves out unchanged.
func readBodyJSON(r *http.Request, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return rgerrors.Wrap(rgerrors.ErrCodeInvalidInput, err, "read body")
	}
	if len(body) > maxBodyBytes {
		return rgerrors.New(rgerrors.ErrCodeInvalidInput, "request body too large (max %d bytes)", maxBodyBytes)
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return rgerrors.Wrap(rgerrors.ErrCodeInvalidInput, err, "decode body")
	}
	return nil
}
