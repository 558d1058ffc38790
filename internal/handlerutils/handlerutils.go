// Package handlerutils holds the handler signature used across every
// feature and the JSON envelope writers shared by all endpoints.
package handlerutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// APIHandler is the handler signature used by every route. Returned errors
// are converted to envelope responses by the error-handling middleware.
type APIHandler func(w http.ResponseWriter, r *http.Request) error

// ParseJSON decodes the request body into v.
func ParseJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("missing request body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}

// WriteJSON writes v as-is. Used by the endpoints that opt out of the
// envelope (search's bare array) and by the envelope writers below.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(v)
}

// WriteSuccessJSON writes the standard {success, message, ...payload}
// envelope. Payload keys are merged into the top level of the response.
func WriteSuccessJSON(w http.ResponseWriter, statusCode int, message string, payload map[string]any) error {
	body := make(map[string]any, len(payload)+2)
	body["success"] = true
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	return WriteJSON(w, statusCode, body)
}

// WriteFailureJSON writes a success-false envelope with a 200 status. The
// duplicate-category and duplicate-email paths respond this way instead of
// using an HTTP error status.
func WriteFailureJSON(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, map[string]any{
		"success": false,
		"message": message,
	})
}

// WriteErrorJSON writes a success-false envelope with the given HTTP error
// status and an optional field-errors payload.
func WriteErrorJSON(w http.ResponseWriter, statusCode int, message string, errs any) error {
	body := map[string]any{
		"success": false,
		"message": message,
	}
	if errs != nil {
		body["errors"] = errs
	}
	return WriteJSON(w, statusCode, body)
}

// FileUpload is a fully-read multipart file part.
type FileUpload struct {
	Data        []byte
	ContentType string
}

// ReadFormFile reads the named file part of an already-parsed multipart
// form. Returns nil when the part is absent.
func ReadFormFile(r *http.Request, field string) (*FileUpload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read form file %q: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read form file %q: %w", field, err)
	}

	return &FileUpload{
		Data:        data,
		ContentType: partContentType(header),
	}, nil
}

func partContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
