// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package web

import (
	"context"
	"crypto/sha1"
	"errors"
	"io"
	"net/http"

	"github.com/docker/go-units"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/swaggest/usecase"
	"github.com/trim21/errgo"

	"tor2json/internal/summary"
	"tor2json/internal/web/jsonrpc"
	"tor2json/internal/web/res"
)

type cacheKey struct {
	body     [sha1.Size]byte
	maxFiles int
}

func (s *server) summarize(data []byte, opts summary.Options) (summary.Summary, error) {
	key := cacheKey{body: sha1.Sum(data), maxFiles: opts.MaxFiles}

	if v, ok := s.cache.Get(key); ok {
		s.metrics.cacheHits.Inc()
		return v, nil
	}

	v, err := summary.FromBytes(data, opts)
	if err != nil {
		s.metrics.summaries.WithLabelValues(resultLabel(err)).Inc()
		return summary.Summary{}, err
	}

	s.metrics.summaries.WithLabelValues("ok").Inc()
	s.cache.Add(key, v)

	return v, nil
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, summary.ErrMalformed):
		return "malformed"
	case errors.Is(err, summary.ErrMissingField):
		return "missing_field"
	}

	return "error"
}

// postSummary takes the raw torrent file as request body.
func (s *server) postSummary(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBody))
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			res.JSON(w, http.StatusRequestEntityTooLarge, res.Error{
				Error: "torrent file too large, only allow <= " + humanize.IBytes(uint64(s.opts.MaxBody)),
			})
			return
		}

		res.JSON(w, http.StatusBadRequest, res.Error{Error: errgo.Wrap(err, "failed to read body").Error()})
		return
	}

	v, err := s.summarize(body, s.opts.Summary)
	if err != nil {
		log.Debug().Err(err).Msg("failed to summarize torrent")
		res.JSON(w, httpStatus(err), res.Error{Error: err.Error()})
		return
	}

	res.JSON(w, http.StatusOK, v)
}

type SummaryRequest struct {
	TorrentFile []byte `json:"torrent_file" description:"base64 encoded torrent file content" validate:"required"`
	MaxFiles    int    `json:"max_files" description:"limit file list, 0 means server default" validate:"gte=0"`
}

func addSummary(h *jsonrpc.Handler, s *server) {
	u := usecase.NewInteractor[*SummaryRequest, summary.Summary](
		func(ctx context.Context, req *SummaryRequest, out *summary.Summary) error {
			if int64(len(req.TorrentFile)) > s.opts.MaxBody {
				return CodeError(CodeTooLarge, errors.New("torrent file too large, only allow <= "+
					humanize.IBytes(uint64(s.opts.MaxBody))))
			}

			opts := s.opts.Summary
			if req.MaxFiles != 0 {
				opts.MaxFiles = req.MaxFiles
			}

			v, err := s.summarize(req.TorrentFile, opts)
			if err != nil {
				return CodeError(appCode(err), errgo.Wrap(err, "failed to parse torrent file"))
			}

			*out = v

			return nil
		},
	)
	u.SetName("torrent.summary")
	h.Add(u)
}

func addPing(h *jsonrpc.Handler) {
	u := usecase.NewInteractor[*struct{}, struct{}](
		func(ctx context.Context, req *struct{}, out *struct{}) error {
			return nil
		},
	)
	u.SetName("system.ping")
	h.Add(u)
}

// jsonRPCBodyLimit leaves room for base64 and the envelope.
func jsonRPCBodyLimit(maxBody int64) int64 {
	return maxBody*4/3 + units.KiB*4
}
