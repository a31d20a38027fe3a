// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package null

import (
	"encoding/json"
)

var (
	_ json.Marshaler   = Null[any]{}
	_ json.Unmarshaler = (*Null[any])(nil)
)

type String = Null[string]
type Int64 = Null[int64]
type Bool = Null[bool]

// Null is an optional value, encoded as json null when not set.
type Null[T any] struct {
	Value T
	Set   bool
}

func New[T any](t T) Null[T] {
	return Null[T]{
		Value: t,
		Set:   true,
	}
}

// Default returns v when t is not set.
func (t Null[T]) Default(v T) T {
	if t.Set {
		return t.Value
	}

	return v
}

// IsZero drives the `omitzero` json option.
func (t Null[T]) IsZero() bool {
	return !t.Set
}

func (t Null[T]) MarshalJSON() ([]byte, error) {
	if !t.Set {
		return []byte("null"), nil
	}

	return json.Marshal(t.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Null[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	t.Set = true
	return json.Unmarshal(data, &t.Value)
}
