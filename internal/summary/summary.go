// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package summary

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"tor2json/internal/bencode"
	"tor2json/internal/metainfo"
	"tor2json/internal/pkg/null"
)

var (
	ErrMalformed    = bencode.ErrMalformed
	ErrMissingField = metainfo.ErrMissingField
)

type MissingFieldError = metainfo.MissingFieldError

// defaultName is used by multi-file torrents without a usable name.
const defaultName = "torrent"

type File struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Summary is the flat description of a torrent file.
// Fields are ordered by json key.
type Summary struct {
	Hybrid        null.Bool   `json:"bt_hybrid,omitzero"`
	Version       int64       `json:"bt_version"`
	ContentLength int64       `json:"content_length"`
	Extensions    null.String `json:"extensions,omitzero"`
	Files         []File      `json:"files"`
	FilesCount    int         `json:"files_count"`
	FilesSize     int64       `json:"files_size"`
	InfoHash      string      `json:"ih"`
	InfoHashV2    null.String `json:"ih_v2,omitzero"`
	Name          string      `json:"name"`
	PieceLength   int64       `json:"piece_length"`

	Extra Extra `json:"-"`
}

type Options struct {
	// MaxFiles limits the file list, 0 means no limit.
	MaxFiles int
}

// FromBytes decodes a whole torrent file and summarizes it.
func FromBytes(data []byte, opts Options) (Summary, error) {
	mi, err := metainfo.Load(data)
	if err != nil {
		return Summary{}, err
	}

	return FromMetaInfo(mi, int64(len(data)), opts)
}

// FromMetaInfo summarizes a decoded torrent, contentLength is the size of the encoded file.
func FromMetaInfo(mi *metainfo.MetaInfo, contentLength int64, opts Options) (Summary, error) {
	info := mi.UnmarshalInfo()

	var files []File
	var name string

	switch info.Layout {
	case metainfo.LayoutFileTree:
		name, _ = lo.Coalesce(info.BestName(), defaultName)
		files = lo.Map(info.Files, func(item metainfo.FileInfo, _ int) File {
			return File{Name: strings.Join(item.Path, "/"), Size: item.Length}
		})
	case metainfo.LayoutMultiFile:
		name, _ = lo.Coalesce(info.BestName(), defaultName)
		files = lo.Map(info.Files, func(item metainfo.FileInfo, index int) File {
			p := item.BestPath()
			if len(p) == 0 {
				log.Debug().Int("index", index).Msg("file entry has no path")
				return File{Name: fmt.Sprintf("%s/<no filename for file #%d>", name, index+1), Size: item.Length}
			}

			return File{Name: name + "/" + strings.Join(p, "/"), Size: item.Length}
		})
	case metainfo.LayoutSingleFile:
		name = info.BestName()
		files = []File{{Name: name, Size: info.Length}}
	default:
		return Summary{}, &MissingFieldError{Field: "length or files", Reason: "info has neither a single file length nor a file list"}
	}

	if opts.MaxFiles > 0 && len(files) > opts.MaxFiles {
		files = files[:opts.MaxFiles]
	}

	s := Summary{
		Version:       1,
		ContentLength: contentLength,
		Extensions:    guessExtension(files),
		Files:         files,
		FilesCount:    len(files),
		FilesSize:     lo.SumBy(files, func(f File) int64 { return f.Size }),
		InfoHash:      mi.HashInfoBytes().Hex(),
		Name:          name,
		PieceLength:   info.PieceLength,
		Extra:         newExtra(mi, &info, files),
	}

	if info.MetaVersion.Set {
		s.Version = max(info.MetaVersion.Value, 2)
		s.InfoHashV2 = null.New(mi.HashInfoBytesV2().Hex())
		s.Hybrid = null.New(info.HasPieces())
	}

	return s, nil
}
