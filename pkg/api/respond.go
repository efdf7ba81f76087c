package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/dashgrid/pkg/errors"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Code   errors.Code `json:"code"`
	Detail string      `json:"detail"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	detail := errors.UserMessage(err)
	if errors.IsValidation(err) {
		s.logger.Debug("rejected request", "code", code, "err", err)
	}
	if status >= 500 {
		s.logger.Error("request failed", "err", err)
		if code == errors.ErrCodeInternal {
			detail = "internal error"
		}
	}
	s.writeJSON(w, status, errorResponse{Code: code, Detail: detail})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRectangle, errors.ErrCodeInvalidDimensions,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidWidget:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeDashboardNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into v, rejecting unknown fields.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}
