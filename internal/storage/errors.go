// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"errors"
	"fmt"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/kv"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound = fmt.Errorf("record %w", apperrors.ErrNotFound)
	ErrCorrupt  = errors.New("record cannot be decoded")
)

// wrapNotFound turns a kv miss into ErrNotFound annotated with what was looked up.
func wrapNotFound(err error, what string) error {
	if errors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to read %s: %w", what, err)
}
