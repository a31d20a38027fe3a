// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package bencode

import (
	"errors"
	"fmt"
)

// ErrMalformed is matched by every decode error.
var ErrMalformed = errors.New("malformed bencode")

// SyntaxError reports where decoding stopped.
type SyntaxError struct {
	Msg    string
	Offset int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed bencode at offset %d: %s", e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrMalformed
}

func syntaxError(offset int, format string, a ...any) error {
	return &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, a...)}
}
