// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package web

import (
	"fmt"
	"net/http"
	"reflect"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"tor2json/internal/summary"
	"tor2json/internal/version"
	"tor2json/internal/web/jsonrpc"
	"tor2json/internal/web/res"
)

type Options struct {
	Summary   summary.Options
	MaxBody   int64
	CacheSize int
	Debug     bool
}

type metrics struct {
	summaries *prometheus.CounterVec
	cacheHits prometheus.Counter
}

type server struct {
	cache   *lru.Cache[cacheKey, summary.Summary]
	metrics metrics
	opts    Options
}

func New(opts Options) http.Handler {
	reg := prometheus.NewRegistry()

	s := &server{
		opts:  opts,
		cache: lo.Must(lru.New[cacheKey, summary.Summary](max(opts.CacheSize, 1))),
		metrics: metrics{
			summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "tor2json_summaries_total",
				Help: "torrent files summarized, by result",
			}, []string{"result"}),
			cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "tor2json_summary_cache_hits_total",
				Help: "summaries served from cache",
			}),
		},
	}

	reg.MustRegister(s.metrics.summaries, s.metrics.cacheHits)

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	h := &jsonrpc.Handler{Validator: v}

	r := chi.NewMux()
	r.Use(middleware.Recoverer, requestLogger)

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		res.Text(w, http.StatusOK, ".")
	})

	if opts.Debug {
		info, ok := debug.ReadBuildInfo()
		r.Get("/debug/version", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("content-type", "text/plain")
			w.WriteHeader(http.StatusOK)
			_, _ = fmt.Fprintln(w, version.Print())
			if ok {
				_, _ = fmt.Fprintln(w)
				_, _ = fmt.Fprint(w, version.FormatBuildInfo(info))
			}
		})

		r.Mount("/debug", middleware.Profiler())
	}

	addPing(h)
	addSummary(h, s)

	r.With(middleware.NoCache).Post("/summary", s.postSummary)

	r.With(middleware.NoCache, bodyLimit(jsonRPCBodyLimit(opts.MaxBody))).Post("/json_rpc", h.ServeHTTP)

	return r
}

func bodyLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}
