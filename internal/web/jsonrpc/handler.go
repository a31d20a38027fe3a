// Copyright 2024 trim21 <trim21.me@gmail.com>
// Copyright 2021 Viacheslav Poturaev
// SPDX-License-Identifier: MIT
// https://github.com/swaggest/jsonrpc/blob/master/LICENSE

package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/swaggest/usecase"

	"tor2json/internal/pkg/mempool"
)

const ver = "2.0"

// Handler serves JSON-RPC 2.0 methods with HTTP.
type Handler struct {
	Validator *validator.Validate

	methods     map[string]method
	Middlewares []usecase.Middleware
}

type method struct {
	useCase usecase.Interactor

	inputBufferType  reflect.Type
	outputBufferType reflect.Type
	inputIsPtr       bool
}

func portType(port any) (t reflect.Type, isPtr bool) {
	t = reflect.TypeOf(port)
	if t != nil && t.Kind() == reflect.Ptr {
		return t.Elem(), true
	}

	return t, false
}

// Add registers use case interactor as JSON-RPC method.
func (h *Handler) Add(u usecase.Interactor) {
	if h.methods == nil {
		h.methods = make(map[string]method)
	}

	var withName usecase.HasName
	if !usecase.As(u, &withName) {
		panic("use case name is required")
	}

	if _, exists := h.methods[withName.Name()]; exists {
		panic(fmt.Sprintf("method %s exists", withName.Name()))
	}

	m := method{useCase: usecase.Wrap(u, h.Middlewares...)}

	var withInput usecase.HasInputPort
	if usecase.As(u, &withInput) {
		m.inputBufferType, m.inputIsPtr = portType(withInput.InputPort())
	}

	var withOutput usecase.HasOutputPort
	if usecase.As(u, &withOutput) {
		m.outputBufferType, _ = portType(withOutput.OutputPort())
	}

	h.methods[withName.Name()] = m
}

// Methods returns registered method names in order.
func (h *Handler) Methods() []string {
	names := make([]string, 0, len(h.methods))
	for name := range h.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Request is an JSON-RPC request item.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      json.RawMessage `json:"id,omitempty"`
}

// Response is an JSON-RPC response item.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	var (
		req  Request
		resp Response
	)

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, fmt.Errorf("failed to unmarshal request: %w", err), CodeParseError)
		return
	}

	resp.ID = req.ID
	resp.JSONRPC = ver

	if req.JSONRPC != ver {
		h.fail(w, fmt.Errorf("invalid jsonrpc value: %q", req.JSONRPC), CodeInvalidRequest)
		return
	}

	h.invoke(r.Context(), req, &resp)

	var buf = mempool.Get()
	defer mempool.Put(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		h.fail(w, err, CodeInternalError)
		return
	}

	_, _ = w.Write(buf.B)
}

func (h *Handler) invoke(ctx context.Context, req Request, resp *Response) {
	var input, output any

	m, found := h.methods[req.Method]
	if !found {
		resp.Error = &Error{
			Code:    CodeMethodNotFound,
			Message: "method not found: " + req.Method,
		}

		return
	}

	if m.inputBufferType != nil {
		iv := reflect.New(m.inputBufferType)
		input = iv.Interface()

		if err := h.decode(req, input); err != nil {
			h.errResp(resp, err.Error(), CodeInvalidParams, errors.Unwrap(err))
			return
		}

		if !m.inputIsPtr {
			input = iv.Elem().Interface()
		}
	}

	if m.outputBufferType != nil {
		output = reflect.New(m.outputBufferType).Interface()
	}

	if err := m.useCase.Interact(ctx, input, output); err != nil {
		h.errResp(resp, "operation failed", CodeInternalError, err)
		return
	}

	data, err := json.Marshal(output)
	if err != nil {
		resp.Error = &Error{
			Code:    CodeInternalError,
			Message: "failed to marshal result: " + err.Error(),
		}

		return
	}

	resp.Result = data
}

type paramsError struct {
	err error
	msg string
}

func (e paramsError) Error() string { return e.msg }
func (e paramsError) Unwrap() error { return e.err }

func (h *Handler) decode(req Request, input any) error {
	if err := json.Unmarshal(req.Params, input); err != nil {
		return paramsError{msg: "failed to unmarshal parameters", err: err}
	}

	if h.Validator != nil {
		if err := h.Validator.Struct(input); err != nil {
			return paramsError{msg: "invalid parameters", err: err}
		}
	}

	return nil
}

func (h *Handler) errResp(resp *Response, msg string, code ErrorCode, err error) {
	resp.Error = &Error{
		Code:    code,
		Message: msg,
	}

	var appErr ErrWithAppCode
	if errors.As(err, &appErr) {
		resp.Error.Code = appErr.AppErrCode()
		resp.Error.Message = err.Error()
		return
	}

	resp.Error.Data = err.Error()
}

func (h *Handler) fail(w http.ResponseWriter, err error, code ErrorCode) {
	data, err := json.Marshal(Response{
		JSONRPC: ver,
		Error: &Error{
			Code:    code,
			Message: err.Error(),
		},
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write(data)
}
