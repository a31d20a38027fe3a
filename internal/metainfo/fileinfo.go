// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package metainfo

import (
	"slices"

	"tor2json/internal/bencode"
)

// Information specific to a single file inside the MetaInfo structure.
type FileInfo struct {
	Path []string // BEP3
	// Unofficial extension by BiglyBT, preferred when available.
	PathUtf8 []string

	// BEP3, tolerant of list-wrapped and string encoded numbers.
	Length int64
}

func (fi *FileInfo) BestPath() []string {
	if len(fi.PathUtf8) != 0 {
		return fi.PathUtf8
	}
	return fi.Path
}

func fileInfoFrom(v bencode.Value) FileInfo {
	var fi FileInfo
	if !v.IsDict() {
		return fi
	}

	if p, ok := v.Get("path"); ok {
		fi.Path = pathSegments(p)
	}

	if p, ok := v.Get("path.utf-8"); ok {
		fi.PathUtf8 = pathSegments(p)
	}

	if l, ok := v.Get("length"); ok {
		fi.Length = LenientInt(l)
	}

	return fi
}

func pathSegments(v bencode.Value) []string {
	switch v.Kind() {
	case bencode.KindList:
		items, _ := v.List()
		segments := make([]string, 0, len(items))
		for _, item := range items {
			segments = append(segments, LenientString(item))
		}
		return segments
	case bencode.KindDict:
		return nil
	default:
		return []string{LenientString(v)}
	}
}

// fileTreeFrom flattens a BEP 52 file tree. A leaf is a dictionary whose only key is "".
func fileTreeFrom(v bencode.Value, parent []string, files []FileInfo) []FileInfo {
	entries, ok := v.Entries()
	if !ok {
		return files
	}

	for _, e := range entries {
		if !e.Value.IsDict() {
			continue
		}

		p := append(slices.Clone(parent), SafeDecode(e.Key))

		if leaf, ok := e.Value.Get(""); ok && e.Value.Len() == 1 {
			var length int64
			if l, ok := leaf.Get("length"); ok {
				length = LenientInt(l)
			}

			files = append(files, FileInfo{Path: p, Length: length})
			continue
		}

		files = fileTreeFrom(e.Value, p, files)
	}

	return files
}
