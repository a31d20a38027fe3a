// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tor2json/internal/source"
)

const torrent = "d4:infod6:lengthi1e4:name1:aee"

func newReader(maxSize int64) *source.Reader {
	return source.New(source.Options{
		UserAgent: "tor2json-test",
		Timeout:   5 * time.Second,
		MaxSize:   maxSize,
	})
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "a.torrent")
	require.NoError(t, os.WriteFile(p, []byte(torrent), 0o600))

	b, err := newReader(1024).Read(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, torrent, string(b))

	_, err = newReader(1024).Read(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestReadStdin(t *testing.T) {
	t.Parallel()

	b, err := newReader(1024).WithStdin(strings.NewReader(torrent)).Read(context.Background(), source.Stdin)
	require.NoError(t, err)
	require.Equal(t, torrent, string(b))
}

func TestTooLarge(t *testing.T) {
	t.Parallel()

	r := newReader(int64(len(torrent)) - 1).WithStdin(strings.NewReader(torrent))
	_, err := r.Read(context.Background(), source.Stdin)
	require.ErrorIs(t, err, source.ErrTooLarge)

	r = newReader(int64(len(torrent))).WithStdin(strings.NewReader(torrent))
	_, err = r.Read(context.Background(), source.Stdin)
	require.NoError(t, err)
}

func TestNoSizeLimit(t *testing.T) {
	t.Parallel()

	b, err := source.New(source.Options{}).
		WithStdin(strings.NewReader(torrent)).
		Read(context.Background(), source.Stdin)
	require.NoError(t, err)
	require.Equal(t, torrent, string(b))
}

func TestReadURL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tor2json-test", r.Header.Get("User-Agent"))
		if r.URL.Path != "/a.torrent" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(torrent))
	}))
	defer srv.Close()

	b, err := newReader(1024).Read(context.Background(), srv.URL+"/a.torrent")
	require.NoError(t, err)
	require.Equal(t, torrent, string(b))

	_, err = newReader(1024).Read(context.Background(), srv.URL+"/missing.torrent")
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")

	_, err = newReader(4).Read(context.Background(), srv.URL+"/a.torrent")
	require.ErrorIs(t, err, source.ErrTooLarge)
}

func TestExpandHome(t *testing.T) {
	t.Parallel()

	p, err := source.ExpandHome("/abs/a.torrent")
	require.NoError(t, err)
	require.Equal(t, "/abs/a.torrent", p)

	h, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	p, err = source.ExpandHome("~/a.torrent")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(h, "a.torrent"), p)

	require.True(t, source.IsURL("https://example.com/a.torrent"))
	require.False(t, source.IsURL("a.torrent"))
}
