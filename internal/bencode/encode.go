// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package bencode

import (
	"strconv"
)

// Encode re-encodes a value tree. Dictionary entries are written in stored
// order, so a decoded tree encodes back to its source bytes.
func Encode(v Value) []byte {
	return AppendEncode(nil, v)
}

func AppendEncode(dst []byte, v Value) []byte {
	switch v.kind {
	case KindInt:
		dst = append(dst, 'i')
		dst = strconv.AppendInt(dst, v.i, 10)
		return append(dst, 'e')
	case KindBytes:
		return appendBytes(dst, v.b)
	case KindList:
		dst = append(dst, 'l')
		for _, item := range v.list {
			dst = AppendEncode(dst, item)
		}
		return append(dst, 'e')
	case KindDict:
		dst = append(dst, 'd')
		for _, e := range v.dict {
			dst = appendBytes(dst, e.Key)
			dst = AppendEncode(dst, e.Value)
		}
		return append(dst, 'e')
	}

	panic("bencode: can't encode invalid value")
}

func appendBytes(dst []byte, b []byte) []byte {
	dst = strconv.AppendInt(dst, int64(len(b)), 10)
	dst = append(dst, ':')
	return append(dst, b...)
}
