// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package render

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/trim21/errgo"
)

// JSON writes v followed by a newline. Struct fields are expected to be in key order.
func JSON(w io.Writer, v any, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	if err := enc.Encode(v); err != nil {
		return errgo.Wrap(err, "failed to write json")
	}

	return nil
}
