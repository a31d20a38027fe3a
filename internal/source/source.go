// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/trim21/errgo"
)

// Stdin is the input reference for standard input.
const Stdin = "-"

var ErrTooLarge = errors.New("input too large")

type Options struct {
	UserAgent string
	Timeout   time.Duration
	// MaxSize caps the number of bytes read from any input.
	MaxSize int64
}

// Reader loads a whole torrent file from a path, stdin or a http(s) url.
type Reader struct {
	http  *resty.Client
	stdin io.Reader
	opts  Options
}

func New(opts Options) *Reader {
	c := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetDoNotParseResponse(true)

	return &Reader{http: c, stdin: os.Stdin, opts: opts}
}

// WithStdin replaces the reader used for Stdin.
func (r *Reader) WithStdin(stdin io.Reader) *Reader {
	r.stdin = stdin
	return r
}

func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func (r *Reader) Read(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case ref == Stdin:
		return r.readAll(r.stdin, "stdin")
	case IsURL(ref):
		return r.fetch(ctx, ref)
	default:
		return r.readFile(ref)
	}
}

func (r *Reader) readFile(name string) ([]byte, error) {
	name, err := ExpandHome(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, errgo.Wrap(err, "failed to open torrent file")
	}
	defer f.Close()

	return r.readAll(f, name)
}

func (r *Reader) fetch(ctx context.Context, url string) ([]byte, error) {
	log.Debug().Str("url", url).Msg("fetching torrent")

	res, err := r.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, errgo.Wrap(err, "failed to fetch torrent")
	}

	body := res.RawBody()
	defer body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("failed to fetch torrent: unexpected http status %d", res.StatusCode())
	}

	return r.readAll(body, url)
}

// readAll applies MaxSize, a non-positive MaxSize means no limit.
func (r *Reader) readAll(rd io.Reader, name string) ([]byte, error) {
	if r.opts.MaxSize <= 0 {
		b, err := io.ReadAll(rd)
		if err != nil {
			return nil, errgo.Wrap(err, fmt.Sprintf("failed to read %s", name))
		}

		return b, nil
	}

	b, err := io.ReadAll(io.LimitReader(rd, r.opts.MaxSize+1))
	if err != nil {
		return nil, errgo.Wrap(err, fmt.Sprintf("failed to read %s", name))
	}

	if int64(len(b)) > r.opts.MaxSize {
		return nil, fmt.Errorf("%w: %s is larger than %s", ErrTooLarge, name, units.BytesSize(float64(r.opts.MaxSize)))
	}

	return b, nil
}

// ExpandHome replaces a leading "~/" with the user home directory.
func ExpandHome(p string) (string, error) {
	if !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p, nil
	}

	h, err := os.UserHomeDir()
	if err != nil {
		return "", errgo.Wrap(err, "failed to get home directory")
	}

	return strings.Replace(p, "~", h, 1), nil
}
