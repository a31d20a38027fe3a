// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package metainfo

import (
	"crypto/sha1"
	"crypto/sha256"
	"os"

	"github.com/trim21/errgo"

	"tor2json/internal/bencode"
)

// MetaInfo is a decoded torrent file, the root dictionary with its raw info span.
type MetaInfo struct {
	root bencode.Value
	info bencode.Value
}

// Load decodes a whole torrent file held in memory.
func Load(data []byte) (*MetaInfo, error) {
	root, err := bencode.Decode(data)
	if err != nil {
		return nil, err
	}

	return FromValue(root)
}

func LoadFromFile(filename string) (*MetaInfo, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errgo.Wrap(err, "failed to read torrent file")
	}

	return Load(data)
}

// FromValue requires root to be a dictionary holding an "info" dictionary.
func FromValue(root bencode.Value) (*MetaInfo, error) {
	if !root.IsDict() {
		return nil, &MissingFieldError{Field: "info", Reason: "torrent root is a " + root.Kind().String()}
	}

	info, ok := root.Get("info")
	if !ok {
		return nil, &MissingFieldError{Field: "info"}
	}

	if !info.IsDict() {
		return nil, &MissingFieldError{Field: "info", Reason: "expecting dictionary, got " + info.Kind().String()}
	}

	return &MetaInfo{root: root, info: info}, nil
}

// InfoBytes is the info dictionary exactly as encoded in the source.
func (mi *MetaInfo) InfoBytes() []byte {
	return mi.info.Raw()
}

func (mi *MetaInfo) HashInfoBytes() Hash {
	return sha1.Sum(mi.InfoBytes())
}

func (mi *MetaInfo) HashInfoBytesV2() HashV2 {
	return sha256.Sum256(mi.InfoBytes())
}

func (mi *MetaInfo) Announce() string {
	v, ok := mi.root.Get("announce")
	if !ok {
		return ""
	}

	return LenientString(v)
}

func (mi *MetaInfo) AnnounceList() AnnounceList {
	v, ok := mi.root.Get("announce-list")
	if !ok {
		return nil
	}

	return announceListFrom(v)
}

func (mi *MetaInfo) UpvertedAnnounceList() AnnounceList {
	al := mi.AnnounceList()
	announce := mi.Announce()
	if al.OverridesAnnounce(announce) {
		return al
	}
	if announce != "" {
		return [][]string{{announce}}
	}
	return nil
}

func (mi *MetaInfo) UnmarshalInfo() Info {
	return infoFrom(mi.info)
}
