// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package apperrors holds the error taxonomy shared by every service of the
// platform and its mapping onto HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAuthentication        = errors.New("authentication required")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrNotFound              = errors.New("not found")
	ErrValidation            = errors.New("invalid input")
	ErrConflict              = errors.New("conflict")
	ErrSignatureVerification = errors.New("signature verification failed")
	ErrExternalService       = errors.New("external service error")
)

// Kind returns the taxonomy sentinel err wraps, or nil for unclassified errors.
func Kind(err error) error {
	for _, kind := range []error{
		ErrAuthentication,
		ErrPermissionDenied,
		ErrNotFound,
		ErrValidation,
		ErrConflict,
		ErrSignatureVerification,
		ErrExternalService,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// HTTPStatus maps err onto the response status returned to REST callers.
func HTTPStatus(err error) int {
	switch Kind(err) {
	case ErrAuthentication, ErrSignatureVerification:
		return http.StatusUnauthorized
	case ErrPermissionDenied:
		return http.StatusForbidden
	case ErrNotFound:
		return http.StatusNotFound
	case ErrValidation:
		return http.StatusBadRequest
	case ErrConflict:
		return http.StatusConflict
	case ErrExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

func Validation(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

func Conflict(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

func PermissionDenied(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrPermissionDenied)
}

func ExternalService(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrExternalService)
}
