// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swaggest/assertjson"

	"tor2json/internal/config"
	"tor2json/internal/source"
	"tor2json/internal/summary"
)

const multiFileTorrent = "d4:infod5:filesl" +
	"d6:lengthi1000e4:pathl10:subfolder19:file1.txtee" +
	"d6:lengthi2000e4:pathl10:subfolder29:file2.txtee" +
	"d6:lengthi5e4:pathl6:READMEee" +
	"e4:name14:Torrent_Folder12:piece lengthi32768e6:pieces0:ee"

func TestSplitCommand(t *testing.T) {
	t.Parallel()

	cmd, args := splitCommand([]string{"a.torrent"})
	require.Equal(t, "summary", cmd)
	require.Equal(t, []string{"a.torrent"}, args)

	cmd, args = splitCommand([]string{"decode", "-"})
	require.Equal(t, "decode", cmd)
	require.Equal(t, []string{"-"}, args)

	cmd, args = splitCommand(nil)
	require.Equal(t, "summary", cmd)
	require.Empty(t, args)
}

func runOn(t *testing.T, cmd string, input string) (string, error) {
	t.Helper()

	src := source.New(source.Options{MaxSize: 1024}).WithStdin(strings.NewReader(input))

	var out bytes.Buffer
	err := runSingle(context.Background(), &out, src, config.Default(), cmd, source.Stdin)

	return out.String(), err
}

func TestRunSummary(t *testing.T) {
	t.Parallel()

	out, err := runOn(t, "summary", multiFileTorrent)
	require.NoError(t, err)

	assertjson.Equal(t, []byte(`{
	  "bt_version": 1,
	  "content_length": 199,
	  "extensions": "txt",
	  "files": [
	    {"name": "Torrent_Folder/subfolder1/file1.txt", "size": 1000},
	    {"name": "Torrent_Folder/subfolder2/file2.txt", "size": 2000},
	    {"name": "Torrent_Folder/README", "size": 5}
	  ],
	  "files_count": 3,
	  "files_size": 3005,
	  "ih": "36e7ca5f33140cb7833856485dc0fc215a5ac241",
	  "name": "Torrent_Folder",
	  "piece_length": 32768
	}`), []byte(out))
}

func TestRunFilenames(t *testing.T) {
	t.Parallel()

	out, err := runOn(t, "filenames", multiFileTorrent)
	require.NoError(t, err)
	require.Equal(t, "Torrent_Folder/subfolder1/file1.txt\n"+
		"Torrent_Folder/subfolder2/file2.txt\n"+
		"Torrent_Folder/README\n", out)
}

func TestRunDecode(t *testing.T) {
	t.Parallel()

	out, err := runOn(t, "decode", multiFileTorrent)
	require.NoError(t, err)
	require.Contains(t, out, "subfolder1/file1.txt")
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	_, err := runOn(t, "summary", "d4:info")
	require.ErrorIs(t, err, summary.ErrMalformed)

	_, err = runOn(t, "decode", "i-0e")
	require.ErrorIs(t, err, summary.ErrMalformed)

	_, err = runOn(t, "summary", "de")
	require.ErrorIs(t, err, summary.ErrMissingField)

	_, err = runOn(t, "summary", strings.Repeat("x", 2048))
	require.ErrorIs(t, err, source.ErrTooLarge)
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.torrent"), []byte(multiFileTorrent), 0o600))

	require.NoError(t, runBatch(context.Background(), config.Default(), dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.torrent"), []byte("garbage"), 0o600))

	err := runBatch(context.Background(), config.Default(), dir)
	require.Error(t, err)
	require.False(t, errors.Is(err, summary.ErrMalformed))
	require.Contains(t, err.Error(), "1 of 2")
}
