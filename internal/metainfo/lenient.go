// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package metainfo

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"tor2json/internal/bencode"
	"tor2json/internal/pkg/unsafe"
)

// Real world torrents carry numbers as strings or wrapped in lists,
// readers below accept these and fall back to zero values.

// LenientInt reads an integer, a decimal byte string, or the first item of a list.
func LenientInt(v bencode.Value) int64 {
	if items, ok := v.List(); ok {
		if len(items) == 0 {
			return 0
		}
		v = items[0]
	}

	switch v.Kind() {
	case bencode.KindInt:
		i, _ := v.Int()
		return i
	case bencode.KindBytes:
		b, _ := v.Bytes()
		i, err := strconv.ParseInt(strings.TrimSpace(unsafe.Str(b)), 10, 64)
		if err != nil {
			return 0
		}
		return i
	}

	return 0
}

// LenientString reads a byte string, an integer, or the first item of a list.
func LenientString(v bencode.Value) string {
	if items, ok := v.List(); ok {
		if len(items) == 0 {
			return ""
		}
		v = items[0]
	}

	switch v.Kind() {
	case bencode.KindBytes:
		b, _ := v.Bytes()
		return SafeDecode(b)
	case bencode.KindInt:
		i, _ := v.Int()
		return strconv.FormatInt(i, 10)
	}

	return ""
}

// SafeDecode returns b as string if it's valid UTF-8, otherwise keeps printable
// ASCII and replaces every other byte with '.'.
func SafeDecode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 0x20 && c <= 0x7e {
			out[i] = c
		} else {
			out[i] = '.'
		}
	}

	return unsafe.Str(out)
}
