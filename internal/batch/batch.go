// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/trim21/errgo"

	"tor2json/internal/summary"
)

const torrentExt = ".torrent"

type Options struct {
	Summary summary.Options
	Workers int
	MaxSize int64
}

// Result of a single torrent file, exactly one of Summary and Err is set.
type Result struct {
	Summary *summary.Summary `json:"summary,omitempty"`
	Path    string           `json:"path"`
	Err     error            `json:"-"`
	Error   string           `json:"error,omitempty"`
}

// Find lists torrent files under root in lexical order.
func Find(root string) ([]string, error) {
	var paths []string

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}

			if strings.EqualFold(filepath.Ext(osPathname), torrentExt) {
				paths = append(paths, osPathname)
			}

			return nil
		},
		ErrorCallback: func(osPathname string, err error) godirwalk.ErrorAction {
			log.Warn().Err(err).Str("path", osPathname).Msg("skip unreadable path")
			return godirwalk.SkipNode
		},
	})
	if err != nil {
		return nil, errgo.Wrap(err, "failed to walk directory")
	}

	return paths, nil
}

// Run summarizes every torrent file under root, results keep the order of Find.
// A torrent that fails to parse doesn't stop the others.
func Run(ctx context.Context, root string, opts Options) ([]Result, error) {
	paths, err := Find(root)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(paths))

	p := pool.New().WithContext(ctx).WithMaxGoroutines(max(opts.Workers, 1))
	for i, path := range paths {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = summarizeFile(path, opts)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, errgo.Wrap(err, "batch canceled")
	}

	return results, nil
}

func summarizeFile(path string, opts Options) Result {
	r := Result{Path: path}

	s, err := readAndSummarize(path, opts)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("failed to summarize torrent")
		r.Err = err
		r.Error = err.Error()
		return r
	}

	r.Summary = &s
	return r
}

func readAndSummarize(path string, opts Options) (summary.Summary, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return summary.Summary{}, errgo.Wrap(err, "failed to stat torrent file")
	}

	if opts.MaxSize > 0 && stat.Size() > opts.MaxSize {
		return summary.Summary{}, errgo.Wrap(os.ErrInvalid, "torrent file too large")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return summary.Summary{}, errgo.Wrap(err, "failed to read torrent file")
	}

	return summary.FromBytes(data, opts.Summary)
}
