// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package metainfo

import (
	"tor2json/internal/bencode"
	"tor2json/internal/pkg/null"
)

type Layout uint8

const (
	LayoutNone       Layout = iota
	LayoutSingleFile        // BEP3 "length"
	LayoutMultiFile         // BEP3 "files"
	LayoutFileTree          // BEP52 "file tree"
)

type Info struct {
	Name        string
	NameUtf8    string
	Pieces      []byte // BEP3
	Files       []FileInfo
	PieceLength int64 // BEP3
	Length      int64 // BEP3, only with LayoutSingleFile

	// BEP 52 (BitTorrent v2)
	MetaVersion null.Int64

	Layout Layout
}

func infoFrom(v bencode.Value) Info {
	var info Info

	if n, ok := v.Get("name"); ok {
		info.Name = LenientString(n)
	}

	if n, ok := v.Get("name.utf-8"); ok {
		info.NameUtf8 = LenientString(n)
	}

	if p, ok := v.Get("piece length"); ok {
		info.PieceLength = LenientInt(p)
	}

	if p, ok := v.Get("pieces"); ok {
		info.Pieces, _ = p.Bytes()
		if info.Pieces == nil {
			info.Pieces = []byte{}
		}
	}

	if mv, ok := v.Get("meta version"); ok {
		info.MetaVersion = null.New(LenientInt(mv))
	}

	if tree, ok := v.Get("file tree"); ok && tree.IsDict() {
		info.Layout = LayoutFileTree
		info.Files = fileTreeFrom(tree, nil, []FileInfo{})
	} else if items, ok := listValue(v, "files"); ok {
		info.Layout = LayoutMultiFile
		info.Files = make([]FileInfo, 0, len(items))
		for _, item := range items {
			info.Files = append(info.Files, fileInfoFrom(item))
		}
	} else if l, ok := v.Get("length"); ok {
		info.Layout = LayoutSingleFile
		info.Length = LenientInt(l)
	}

	return info
}

func (info *Info) HasPieces() bool {
	return info.Pieces != nil
}

func (info *Info) TotalLength() int64 {
	if info.Layout == LayoutSingleFile {
		return info.Length
	}

	var ret int64
	for _, fi := range info.Files {
		ret += fi.Length
	}

	return ret
}

func (info *Info) NumPieces() (num int) {
	return len(info.Pieces) / 20
}

func (info *Info) BestName() string {
	if info.NameUtf8 != "" {
		return info.NameUtf8
	}
	return info.Name
}

// listValue reads key only when it holds a list.
func listValue(v bencode.Value, key string) ([]bencode.Value, bool) {
	x, ok := v.Get(key)
	if !ok {
		return nil, false
	}

	return x.List()
}
