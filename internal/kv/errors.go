// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kv

import (
	"errors"
)

var ErrNotFound = errors.New("key not found")

// RangeBounds converts inclusive Redis style list bounds into a half open
// slice range over a list of length n. ok is false for an empty range.
func RangeBounds(n int, start, stop int64) (from, to int, ok bool) {
	length := int64(n)

	if start < 0 {
		start += length
		if start < 0 {
			start = 0
		}
	}
	if stop < 0 {
		stop += length
	}
	if stop >= length {
		stop = length - 1
	}
	if start > stop || start >= length {
		return 0, 0, false
	}

	return int(start), int(stop + 1), true
}
