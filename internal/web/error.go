// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package web

import (
	"errors"
	"net/http"

	"tor2json/internal/summary"
	"tor2json/internal/web/jsonrpc"
)

// JSON-RPC application error codes.
const (
	CodeMalformed    jsonrpc.ErrorCode = 1
	CodeMissingField jsonrpc.ErrorCode = 2
	CodeTooLarge     jsonrpc.ErrorCode = 3
)

func CodeError(code jsonrpc.ErrorCode, err error) error {
	return resError{error: err, code: code}
}

type resError struct {
	error
	code jsonrpc.ErrorCode
}

func (r resError) AppErrCode() jsonrpc.ErrorCode {
	return r.code
}

func (r resError) Unwrap() error {
	return r.error
}

func appCode(err error) jsonrpc.ErrorCode {
	switch {
	case errors.Is(err, summary.ErrMalformed):
		return CodeMalformed
	case errors.Is(err, summary.ErrMissingField):
		return CodeMissingField
	}

	return jsonrpc.CodeInternalError
}

func httpStatus(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, summary.ErrMalformed), errors.Is(err, summary.ErrMissingField):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
