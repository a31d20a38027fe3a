// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package version_test

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"

	"tor2json/internal/version"
)

func TestPrint(t *testing.T) {
	out := version.Print()
	require.Contains(t, out, "tor2json:   "+version.Version)
	require.Contains(t, out, "platform:   "+version.GoOS+"/"+version.GoArch)
	require.NotContains(t, out, "\n\n")
}

func TestFormatBuildInfo(t *testing.T) {
	out := version.FormatBuildInfo(&debug.BuildInfo{
		GoVersion: "go1.24.0",
		Path:      "tor2json",
		Main:      debug.Module{Path: "tor2json", Version: "(devel)"},
		Deps: []*debug.Module{
			{Path: "example.com/a", Version: "v1.0.0", Sum: "h1:a"},
			{Path: "example.com/bb", Version: "v1.2.0", Sum: "h1:b", Replace: &debug.Module{Path: "../bb"}},
		},
		Settings: []debug.BuildSetting{{Key: "-tags", Value: "a b"}},
	})

	require.Equal(t, "go\tgo1.24.0\n"+
		"path\ttor2json\n"+
		"mod\ttor2json (devel) \n"+
		"dep\texample.com/a  v1.0.0 h1:a\n"+
		"dep\texample.com/bb v1.2.0 h1:b => ../bb  \n"+
		"build\t-tags=\"a b\"\n", out)
}
