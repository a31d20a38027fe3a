// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package metainfo

import (
	"tor2json/internal/bencode"
)

type AnnounceList [][]string

func (al AnnounceList) OverridesAnnounce(announce string) bool {
	for _, tier := range al {
		for _, url := range tier {
			if url != "" || announce == "" {
				return true
			}
		}
	}
	return false
}

func (al AnnounceList) DistinctValues() (ret []string) {
	seen := make(map[string]struct{})
	for _, tier := range al {
		for _, v := range tier {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				ret = append(ret, v)
			}
		}
	}
	return
}

// announceListFrom reads BEP 12 tiers, skipping anything that is not a list of strings.
func announceListFrom(v bencode.Value) AnnounceList {
	tiers, ok := v.List()
	if !ok {
		return nil
	}

	var al AnnounceList
	for _, tier := range tiers {
		urls, ok := tier.List()
		if !ok {
			continue
		}

		var t []string
		for _, u := range urls {
			if b, ok := u.Bytes(); ok {
				t = append(t, SafeDecode(b))
			}
		}

		if len(t) != 0 {
			al = append(al, t)
		}
	}

	return al
}
