// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package bencode

import (
	"bytes"
	"fmt"

	"tor2json/internal/pkg/unsafe"
)

type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindBytes
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindBytes:
		return "byte string"
	case KindList:
		return "list"
	case KindDict:
		return "dictionary"
	}

	return "invalid"
}

// Entry is a single dictionary item.
type Entry struct {
	Key   []byte
	Value Value
}

// Value is a decoded bencode value.
//
// The zero Value is KindInvalid. Values share memory with the buffer they were
// decoded from, the buffer must not be modified while they are in use.
type Value struct {
	b    []byte
	raw  []byte
	list []Value
	dict []Entry
	i    int64
	kind Kind
}

func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

func Bytes(b []byte) Value {
	return Value{kind: KindBytes, b: b}
}

func String(s string) Value {
	return Value{kind: KindBytes, b: []byte(s)}
}

func List(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// Dict keeps entries in the given order.
func Dict(entries ...Entry) Value {
	return Value{kind: KindDict, dict: entries}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsInt() bool   { return v.kind == KindInt }
func (v Value) IsBytes() bool { return v.kind == KindBytes }
func (v Value) IsList() bool  { return v.kind == KindList }
func (v Value) IsDict() bool  { return v.kind == KindDict }

// Raw returns the exact encoded form of v as it appeared in the source buffer.
// Values built in memory have no raw form, Raw returns their encoding instead.
func (v Value) Raw() []byte {
	if v.raw != nil {
		return v.raw
	}

	return Encode(v)
}

func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInt
}

func (v Value) Bytes() ([]byte, bool) {
	return v.b, v.kind == KindBytes
}

// Str returns byte string content as string, without copy.
func (v Value) Str() (string, bool) {
	if v.kind != KindBytes {
		return "", false
	}

	return unsafe.Str(v.b), true
}

func (v Value) List() ([]Value, bool) {
	return v.list, v.kind == KindList
}

func (v Value) Entries() ([]Entry, bool) {
	return v.dict, v.kind == KindDict
}

func (v Value) Len() int {
	switch v.kind {
	case KindBytes:
		return len(v.b)
	case KindList:
		return len(v.list)
	case KindDict:
		return len(v.dict)
	}

	return 0
}

// Get looks up key in a dictionary, first entry wins if the key is duplicated.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindDict {
		return Value{}, false
	}

	k := unsafe.Bytes(key)
	for _, e := range v.dict {
		if bytes.Equal(e.Key, k) {
			return e.Value, true
		}
	}

	return Value{}, false
}

func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindBytes:
		return fmt.Sprintf("%q", v.b)
	case KindList:
		return fmt.Sprintf("list(%d)", len(v.list))
	case KindDict:
		return fmt.Sprintf("dict(%d)", len(v.dict))
	}

	return "<invalid>"
}
