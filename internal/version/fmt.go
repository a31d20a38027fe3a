// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package version

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
)

// FormatBuildInfo renders build info in the layout of `go version -m`,
// with dependency columns aligned.
func FormatBuildInfo(info *debug.BuildInfo) string {
	buf := new(strings.Builder)

	fmt.Fprintf(buf, "go\t%s\n", info.GoVersion)
	if info.Path != "" {
		fmt.Fprintf(buf, "path\t%s\n", info.Path)
	}
	if info.Main.Path != "" {
		writeModule(buf, "mod", &info.Main, 0, 0)
	}

	pathWidth, versionWidth := 0, 0
	for _, d := range info.Deps {
		pathWidth = max(pathWidth, len(d.Path))
		versionWidth = max(versionWidth, len(d.Version))
	}

	for _, d := range info.Deps {
		writeModule(buf, "dep", d, pathWidth, versionWidth)
	}

	for _, s := range info.Settings {
		fmt.Fprintf(buf, "build\t%s=%s\n", quote(s.Key, "= \t\r\n\"`", true), quote(s.Value, " \t\r\n\"`", false))
	}

	return buf.String()
}

func writeModule(buf *strings.Builder, kind string, m *debug.Module, pathWidth, versionWidth int) {
	fmt.Fprintf(buf, "%s\t%-*s %-*s %s", kind, pathWidth, m.Path, versionWidth, m.Version, m.Sum)
	if m.Replace != nil {
		fmt.Fprintf(buf, " => %s %s %s", m.Replace.Path, m.Replace.Version, m.Replace.Sum)
	}
	buf.WriteByte('\n')
}

func quote(s string, special string, quoteEmpty bool) string {
	if (quoteEmpty && s == "") || strings.ContainsAny(s, special) {
		return strconv.Quote(s)
	}

	return s
}
