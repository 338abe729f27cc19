// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"retiresaveup/internal/storage"
)

const (
	// MaxBodyBytes caps every JSON request body.
	MaxBodyBytes = 1 << 20

	// HeaderUserID names the caller. Authentication happens upstream.
	HeaderUserID  = "X-User-ID"
	AnonymousUser = "anonymous"

	maxUserIDLength = 128
)

var (
	errEmptyBody     = errors.New("request body is empty")
	errBodyTooLarge  = fmt.Errorf("request body exceeds %d bytes", MaxBodyBytes)
	errTrailingData  = errors.New("request body must contain a single JSON value")
	errInvalidLimit  = errors.New("limit must be a positive integer")
	errInvalidUserID = errors.New("X-User-ID header is too long or contains control characters")
)

// DecodeJSON reads a single JSON value from the request body into dst.
// Unknown fields are ignored. The returned error is safe to show to clients.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return errEmptyBody
		case errors.As(err, &maxErr):
			return errBodyTooLarge
		case errors.As(err, &syntaxErr):
			return fmt.Errorf("malformed JSON at offset %d", syntaxErr.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("malformed JSON: unexpected end of body")
		case errors.As(err, &typeErr):
			if typeErr.Field != "" {
				return fmt.Errorf("field %q must be of type %s", typeErr.Field, typeErr.Type)
			}
			return fmt.Errorf("body must be of type %s", typeErr.Type)
		default:
			return fmt.Errorf("invalid JSON: %w", err)
		}
	}

	if dec.More() {
		return errTrailingData
	}
	return nil
}

// UserID identifies the caller from the X-User-ID header, falling back to
// the anonymous user.
func UserID(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if id == "" {
		return AnonymousUser, nil
	}
	if len(id) > maxUserIDLength {
		return "", errInvalidUserID
	}
	for _, c := range id {
		if c < 32 || c == 127 {
			return "", errInvalidUserID
		}
	}
	return id, nil
}

// ParseLimit reads the optional limit query parameter. Values above the
// store maximum are clamped rather than rejected.
func ParseLimit(r *http.Request) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get("limit"))
	if v == "" {
		return storage.DefaultListLimit, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, errInvalidLimit
	}
	return storage.ClampLimit(n), nil
}
