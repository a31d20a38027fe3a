// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package render

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"tor2json/internal/bencode"
	"tor2json/internal/summary"
)

// Dump writes the whole value tree in a human-readable form.
// Only the first line of a block carries its header, following lines are indented to match.
func Dump(w io.Writer, v bencode.Value) error {
	d := dumper{w: bufio.NewWriter(w)}
	d.dump(v, "")
	return d.w.Flush()
}

// Filenames writes one file path per line.
func Filenames(w io.Writer, s summary.Summary) error {
	buf := bufio.NewWriter(w)
	for _, f := range s.Files {
		fmt.Fprintln(buf, f.Name)
	}
	return buf.Flush()
}

type dumper struct {
	w *bufio.Writer
}

func (d *dumper) println(s string) {
	_, _ = d.w.WriteString(s)
	_ = d.w.WriteByte('\n')
}

func blank(header string) string {
	return strings.Repeat(" ", len(header))
}

func (d *dumper) dump(v bencode.Value, header string) {
	switch v.Kind() {
	case bencode.KindInt, bencode.KindBytes:
		d.println(header + scalarText(v))
	case bencode.KindList:
		items, _ := v.List()
		for i, item := range items {
			d.dump(item, header+"["+strconv.Itoa(i)+"]")
			header = blank(header)
		}
	case bencode.KindDict:
		entries, _ := v.Entries()
		entries = slices.Clone(entries)
		slices.SortStableFunc(entries, func(a, b bencode.Entry) int {
			return bytes.Compare(a.Key, b.Key)
		})

		for _, e := range entries {
			key := keyText(e.Key)

			if key == "path" || key == "path.utf-8" {
				if joined, ok := joinPath(e.Value); ok {
					d.println(header + key + ": " + joined)
					header = blank(header)
					continue
				}
			}

			switch e.Value.Kind() {
			case bencode.KindList, bencode.KindDict:
				d.println(header + key + ":")
				header = blank(header)
				d.dump(e.Value, header+"  ")
			default:
				d.println(header + key + ": " + scalarText(e.Value))
				header = blank(header)
			}
		}
	}
}

func keyText(k []byte) string {
	if utf8.Valid(k) {
		return string(k)
	}

	return hex.EncodeToString(k)
}

func scalarText(v bencode.Value) string {
	if i, ok := v.Int(); ok {
		return strconv.FormatInt(i, 10)
	}

	b, _ := v.Bytes()
	if len(b) == 0 || !utf8.Valid(b) {
		return fmt.Sprintf("<binary data of %d bytes>", len(b))
	}

	return string(b)
}

func joinPath(v bencode.Value) (string, bool) {
	items, ok := v.List()
	if !ok {
		return "", false
	}

	segments := make([]string, 0, len(items))
	for _, item := range items {
		b, ok := item.Bytes()
		if !ok || !utf8.Valid(b) {
			return "", false
		}
		segments = append(segments, string(b))
	}

	return strings.Join(segments, "/"), true
}
