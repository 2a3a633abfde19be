package utils

import (
	"encoding/json"
	"encoding/xml"
	"mime"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	ErrCodeInvalidPayload       = "invalid_payload"
	ErrCodeValidation           = "validation_error"
	ErrCodeInvalidID            = "invalid_id"
	ErrCodeNotFound             = "not_found"
	ErrCodeNotAcceptable        = "not_acceptable"
	ErrCodeUnsupportedMediaType = "unsupported_media_type"
	ErrCodeInternal             = "internal_server_error"
)

const (
	MediaTypeJSON      = "application/json"
	MediaTypeXML       = "application/xml"
	MediaTypeTextXML   = "text/xml"
	MediaTypeJSONPatch = "application/json-patch+json"
)

// ErrorResponse carries a machine-readable code, a public message and an
// optional `Details` field (like the set of validation failures).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// RespondErrorWithCode builds a JSON error response with a standard
// code and message. The optional `details` is included if non-nil.
func RespondErrorWithCode(
	w http.ResponseWriter,
	status int,
	errorCode string,
	publicMessage string,
	details any,
	devErrs ...error,
) {
	w.Header().Set("Content-Type", MediaTypeJSON)
	w.WriteHeader(status)

	errBody := ErrorResponse{
		Code:    errorCode,
		Message: publicMessage,
	}
	if details != nil {
		errBody.Details = details
	}
	_ = json.NewEncoder(w).Encode(errBody)

	// devErr is optional; only handle if provided
	if len(devErrs) > 0 && devErrs[0] != nil {
		Logger.WithFields(logrus.Fields{
			"status": status,
			"error":  devErrs[0].Error(),
		}).Error(publicMessage)
	} else {
		Logger.WithFields(logrus.Fields{
			"status": status,
		}).Error(publicMessage)
	}
}

// RespondWithJSON for successful cases
func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", MediaTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// NegotiateMediaType resolves the Accept header to one of the supported
// representations. An absent or wildcard Accept falls back to JSON; a header
// that names none of the supported types is rejected outright with 406
// rather than silently served as JSON.
func NegotiateMediaType(r *http.Request) (string, *AppError) {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return MediaTypeJSON, nil
	}

	for _, part := range strings.Split(accept, ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch mt {
		case "*/*", "application/*", MediaTypeJSON:
			return MediaTypeJSON, nil
		case MediaTypeXML, MediaTypeTextXML:
			return MediaTypeXML, nil
		}
	}

	return "", &AppError{
		StatusCode: http.StatusNotAcceptable,
		Code:       ErrCodeNotAcceptable,
		Message:    "Requested representation is not supported",
	}
}

// RespondWithMedia writes the payload in the previously negotiated
// representation. mediaType must come from NegotiateMediaType.
func RespondWithMedia(w http.ResponseWriter, mediaType string, status int, payload any) {
	if mediaType == MediaTypeXML {
		w.Header().Set("Content-Type", MediaTypeXML)
		w.WriteHeader(status)
		_ = xml.NewEncoder(w).Encode(payload)
		return
	}
	RespondWithJSON(w, status, payload)
}
