// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package metainfo_test

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	anacrolix "github.com/anacrolix/torrent/metainfo"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/bencode"

	bc "tor2json/internal/bencode"
	"tor2json/internal/metainfo"
)

func encode(t *testing.T, v any) []byte {
	t.Helper()
	b, err := bencode.EncodeBytes(v)
	require.NoError(t, err)
	return b
}

func TestLoad(t *testing.T) {
	t.Parallel()

	raw := encode(t, map[string]any{
		"announce": "http://tracker.example.com/announce",
		"announce-list": [][]string{
			{"http://tracker.example.com/announce", "http://backup.example.com/announce"},
			{"udp://tracker.example.org:6969"},
		},
		"info": map[string]any{
			"name":         "sample.txt",
			"length":       20,
			"piece length": 65536,
			"pieces":       string(bytes.Repeat([]byte{0xab}, 20)),
		},
	})

	mi, err := metainfo.Load(raw)
	require.NoError(t, err)

	require.Equal(t, "http://tracker.example.com/announce", mi.Announce())
	require.Equal(t, metainfo.AnnounceList{
		{"http://tracker.example.com/announce", "http://backup.example.com/announce"},
		{"udp://tracker.example.org:6969"},
	}, mi.UpvertedAnnounceList())
	require.Equal(t, []string{
		"http://tracker.example.com/announce",
		"http://backup.example.com/announce",
		"udp://tracker.example.org:6969",
	}, mi.AnnounceList().DistinctValues())

	oracle, err := anacrolix.Load(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, oracle.HashInfoBytes().HexString(), mi.HashInfoBytes().Hex())
	require.Equal(t, []byte(oracle.InfoBytes), mi.InfoBytes())

	info := mi.UnmarshalInfo()
	require.Equal(t, metainfo.LayoutSingleFile, info.Layout)
	require.Equal(t, "sample.txt", info.BestName())
	require.EqualValues(t, 20, info.TotalLength())
	require.EqualValues(t, 65536, info.PieceLength)
	require.Equal(t, 1, info.NumPieces())
	require.False(t, info.MetaVersion.Set)
}

func TestHashUsesSourceBytes(t *testing.T) {
	t.Parallel()

	// keys out of order, a re-encoding of the parsed dictionary would sort them
	rawInfo := "d6:lengthi1e4:name1:a12:piece lengthi16384e6:pieces0:e"
	raw := []byte("d4:info" + rawInfo + "8:announce0:e")

	mi, err := metainfo.Load(raw)
	require.NoError(t, err)

	expected := sha1.Sum([]byte(rawInfo))
	require.Equal(t, hex.EncodeToString(expected[:]), mi.HashInfoBytes().Hex())
	require.Len(t, mi.HashInfoBytes().Hex(), 40)
	require.Len(t, mi.HashInfoBytesV2().Hex(), 64)
	require.Equal(t, mi.HashInfoBytes(), metainfo.Hash(expected))
}

func TestMissingInfo(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"de",
		"d8:announce3:urle",
		"d4:infoi1ee",
		"d4:infol4:spamee",
		"l4:infoe",
		"i1e",
	} {
		_, err := metainfo.Load([]byte(input))
		require.ErrorIs(t, err, metainfo.ErrMissingField, input)

		var missing *metainfo.MissingFieldError
		require.ErrorAs(t, err, &missing)
		require.Equal(t, "info", missing.Field)
	}

	_, err := metainfo.Load([]byte("d4:info"))
	require.ErrorIs(t, err, bc.ErrMalformed)
}

func TestUpvertedAnnounceList(t *testing.T) {
	t.Parallel()

	mi, err := metainfo.Load(encode(t, map[string]any{
		"announce": "http://a",
		"info":     map[string]any{"length": 1, "name": "a"},
	}))
	require.NoError(t, err)
	require.Equal(t, metainfo.AnnounceList{{"http://a"}}, mi.UpvertedAnnounceList())

	mi, err = metainfo.Load([]byte("d4:infodee"))
	require.NoError(t, err)
	require.Nil(t, mi.UpvertedAnnounceList())
	require.Equal(t, "", mi.Announce())
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "a.torrent")
	require.NoError(t, os.WriteFile(p, []byte("d4:infod6:lengthi3e4:name1:aee"), 0o600))

	mi, err := metainfo.LoadFromFile(p)
	require.NoError(t, err)
	info := mi.UnmarshalInfo()
	require.EqualValues(t, 3, info.Length)

	_, err = metainfo.LoadFromFile(filepath.Join(t.TempDir(), "missing.torrent"))
	require.Error(t, err)
}
