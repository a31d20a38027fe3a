// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"tor2json/internal/summary"
)

const headerWidth = 70

var headerColor = color.New(color.FgCyan, color.Bold)

// Pretty writes a sectioned, human-readable description of s.
func Pretty(w io.Writer, s summary.Summary) error {
	buf := bufio.NewWriter(w)

	header(buf, "Name")
	fmt.Fprintln(buf, s.Name)

	header(buf, "Piece Length")
	fmt.Fprintf(buf, "%d (%s)\n", s.PieceLength, humanize.IBytes(uint64(max(s.PieceLength, 0))))

	header(buf, "Files")
	for _, f := range s.Files {
		fmt.Fprintf(buf, "%s (%d)\n", f.Name, f.Size)
	}

	header(buf, "Extra")
	fmt.Fprintf(buf, "File count: %s\n", humanize.Comma(int64(s.FilesCount)))
	fmt.Fprintf(buf, "Extension: %s\n", s.Extensions.Default("-"))
	fmt.Fprintf(buf, "Data size: %d (%s)\n", s.FilesSize, humanize.IBytes(uint64(max(s.FilesSize, 0))))
	fmt.Fprintf(buf, "Torrent version: %d\n", s.Version)
	fmt.Fprintf(buf, "Info hash: %s\n", s.InfoHash)
	if s.InfoHashV2.Set {
		fmt.Fprintf(buf, "Info hash v2: %s\n", s.InfoHashV2.Value)
		fmt.Fprintf(buf, "Hybrid: %t\n", s.Hybrid.Value)
	}
	fmt.Fprintf(buf, "Pieces: %d\n", s.Extra.NumPieces)
	fmt.Fprintf(buf, "Piece hash: %s\n", s.Extra.PieceHash)
	fmt.Fprintf(buf, "First chunk: %s\n", s.Extra.FirstChunk)
	fmt.Fprintf(buf, "Files hash: %s\n", s.Extra.FilesHash)

	if len(s.Extra.Trackers) != 0 {
		header(buf, "Trackers")
		for _, t := range s.Extra.Trackers {
			fmt.Fprintln(buf, t)
		}
	}

	return buf.Flush()
}

func header(w io.Writer, title string) {
	_, _ = headerColor.Fprintln(w, "----- "+title+" "+strings.Repeat("-", max(headerWidth-len(title), 0)))
}
