// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package metainfo

import (
	"errors"
)

// ErrMissingField is matched by every MissingFieldError.
var ErrMissingField = errors.New("missing required field")

// MissingFieldError reports a required key that is absent or has the wrong shape.
type MissingFieldError struct {
	Field  string
	Reason string
}

func (e *MissingFieldError) Error() string {
	if e.Reason != "" {
		return "missing required field " + e.Field + ": " + e.Reason
	}

	return "missing required field " + e.Field
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}
