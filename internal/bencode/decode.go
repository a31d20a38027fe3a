// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package bencode

import (
	"bytes"
	"strconv"

	"tor2json/internal/pkg/unsafe"
)

// MaxDepth limits list and dictionary nesting.
const MaxDepth = 1024

// Decode parses buf as exactly one bencode value.
func Decode(buf []byte) (Value, error) {
	if len(buf) == 0 {
		return Value{}, syntaxError(0, "empty input")
	}

	v, next, err := DecodeAt(buf, 0)
	if err != nil {
		return Value{}, err
	}

	if next != len(buf) {
		return Value{}, syntaxError(next, "data after valid prefix")
	}

	return v, nil
}

// DecodeAt parses one value starting at pos and returns the position right after it.
func DecodeAt(buf []byte, pos int) (Value, int, error) {
	d := decoder{buf: buf}
	return d.value(pos, 0)
}

type decoder struct {
	buf []byte
}

func (d *decoder) value(pos int, depth int) (Value, int, error) {
	if pos < 0 {
		return Value{}, pos, syntaxError(pos, "negative position")
	}

	if pos >= len(d.buf) {
		return Value{}, pos, syntaxError(pos, "unexpected end of input")
	}

	switch c := d.buf[pos]; {
	case c == 'i':
		return d.integer(pos)
	case c == 'l':
		return d.list(pos, depth+1)
	case c == 'd':
		return d.dict(pos, depth+1)
	case c >= '0' && c <= '9':
		return d.bytes(pos)
	default:
		return Value{}, pos, syntaxError(pos, "unexpected byte %q", c)
	}
}

func (d *decoder) integer(start int) (Value, int, error) {
	pos := start + 1

	end := bytes.IndexByte(d.buf[pos:], 'e')
	if end < 0 {
		return Value{}, pos, syntaxError(start, "missing integer terminator")
	}
	end += pos

	digits := d.buf[pos:end]
	if err := checkDigits(digits, true); err != "" {
		return Value{}, pos, syntaxError(pos, "invalid integer %q: %s", digits, err)
	}

	n, err := strconv.ParseInt(unsafe.Str(digits), 10, 64)
	if err != nil {
		return Value{}, pos, syntaxError(pos, "invalid integer %q: out of range", digits)
	}

	return Value{kind: KindInt, i: n, raw: d.buf[start : end+1]}, end + 1, nil
}

func (d *decoder) bytes(start int) (Value, int, error) {
	colon := bytes.IndexByte(d.buf[start:], ':')
	if colon < 0 {
		return Value{}, start, syntaxError(start, "missing ':' after byte string length")
	}
	colon += start

	digits := d.buf[start:colon]
	if err := checkDigits(digits, false); err != "" {
		return Value{}, start, syntaxError(start, "invalid byte string length %q: %s", digits, err)
	}

	n, err := strconv.Atoi(unsafe.Str(digits))
	if err != nil {
		return Value{}, start, syntaxError(start, "invalid byte string length %q: out of range", digits)
	}

	from := colon + 1
	if n > len(d.buf)-from {
		return Value{}, from, syntaxError(from, "byte string of length %d overruns input (%d bytes left)", n, len(d.buf)-from)
	}

	to := from + n

	return Value{kind: KindBytes, b: d.buf[from:to:to], raw: d.buf[start:to:to]}, to, nil
}

func (d *decoder) list(start int, depth int) (Value, int, error) {
	if depth > MaxDepth {
		return Value{}, start, syntaxError(start, "nesting deeper than %d", MaxDepth)
	}

	items := []Value{}
	pos := start + 1
	for {
		if pos >= len(d.buf) {
			return Value{}, pos, syntaxError(start, "missing list terminator")
		}

		if d.buf[pos] == 'e' {
			break
		}

		v, next, err := d.value(pos, depth)
		if err != nil {
			return Value{}, next, err
		}

		items = append(items, v)
		pos = next
	}

	return Value{kind: KindList, list: items, raw: d.buf[start : pos+1]}, pos + 1, nil
}

func (d *decoder) dict(start int, depth int) (Value, int, error) {
	if depth > MaxDepth {
		return Value{}, start, syntaxError(start, "nesting deeper than %d", MaxDepth)
	}

	entries := []Entry{}
	pos := start + 1
	for {
		if pos >= len(d.buf) {
			return Value{}, pos, syntaxError(start, "missing dictionary terminator")
		}

		if d.buf[pos] == 'e' {
			break
		}

		if c := d.buf[pos]; c < '0' || c > '9' {
			return Value{}, pos, syntaxError(pos, "dictionary key must be a byte string, got %q", c)
		}

		key, next, err := d.bytes(pos)
		if err != nil {
			return Value{}, next, err
		}

		v, next, err := d.value(next, depth)
		if err != nil {
			return Value{}, next, err
		}

		entries = append(entries, Entry{Key: key.b, Value: v})
		pos = next
	}

	return Value{kind: KindDict, dict: entries, raw: d.buf[start : pos+1]}, pos + 1, nil
}

// checkDigits returns a non-empty reason when s is not a canonical decimal number.
func checkDigits(s []byte, signed bool) string {
	if len(s) == 0 {
		return "no digits"
	}

	digits := s
	if signed && s[0] == '-' {
		digits = s[1:]
		if len(digits) == 0 {
			return "no digits"
		}

		if digits[0] == '0' {
			return "negative zero or leading zero"
		}
	}

	for _, c := range digits {
		if c < '0' || c > '9' {
			return "non-numeric"
		}
	}

	if len(digits) > 1 && digits[0] == '0' {
		return "leading zero"
	}

	return ""
}
