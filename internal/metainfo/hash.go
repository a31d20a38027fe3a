// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package metainfo

import (
	"encoding/hex"
)

// Hash is a v1 info-hash (SHA-1).
type Hash [20]byte

func (h Hash) String() string {
	return h.Hex()
}

func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

// HashV2 is a BEP 52 info-hash (SHA-256).
type HashV2 [32]byte

func (h HashV2) String() string {
	return h.Hex()
}

func (h HashV2) Hex() string {
	return hex.EncodeToString(h[:])
}
