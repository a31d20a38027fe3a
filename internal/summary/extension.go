// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package summary

import (
	"strings"

	"github.com/samber/lo"

	"tor2json/internal/pkg/null"
)

// guessExtension picks the most frequent extension, the earliest one wins a tie.
func guessExtension(files []File) null.String {
	extensions := lo.FilterMap(files, func(f File, _ int) (string, bool) {
		ext := extension(f.Name)
		return ext, ext != ""
	})

	if len(extensions) == 0 {
		return null.String{}
	}

	counts := lo.CountValues(extensions)

	return null.New(lo.MaxBy(lo.Uniq(extensions), func(a, b string) bool {
		return counts[a] > counts[b]
	}))
}

// extension of the last path segment, lower cased. Dot files have none.
func extension(name string) string {
	base := name[strings.LastIndexByte(name, '/')+1:]

	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return ""
	}

	return strings.ToLower(base[i+1:])
}
