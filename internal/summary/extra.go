// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package summary

import (
	"cmp"
	"crypto/sha1"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"

	"tor2json/internal/metainfo"
)

// Extra is metadata shown by the pretty output, useful to spot trends across torrents.
type Extra struct {
	// PieceHash is the SHA-1 of the whole "pieces" string.
	PieceHash string
	// FirstChunk is the hex of the first piece hash.
	FirstChunk string
	// FilesHash fingerprints the file list regardless of its order.
	FilesHash string
	Trackers  []string
	NumPieces int
}

func newExtra(mi *metainfo.MetaInfo, info *metainfo.Info, files []File) Extra {
	pieceHash := sha1.Sum(info.Pieces)

	return Extra{
		PieceHash:  hex.EncodeToString(pieceHash[:]),
		FirstChunk: hex.EncodeToString(info.Pieces[:min(len(info.Pieces), sha1.Size)]),
		FilesHash:  filesHash(files),
		Trackers:   mi.UpvertedAnnounceList().DistinctValues(),
		NumPieces:  info.NumPieces(),
	}
}

func filesHash(files []File) string {
	sorted := slices.Clone(files)
	slices.SortFunc(sorted, func(a, b File) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), cmp.Compare(a.Size, b.Size))
	})

	h := sha1.New()
	for _, f := range sorted {
		h.Write([]byte(f.Name))
		h.Write(strconv.AppendInt(nil, f.Size, 10))
	}

	return hex.EncodeToString(h.Sum(nil))
}
