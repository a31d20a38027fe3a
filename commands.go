// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/trim21/errgo"

	"tor2json/internal/batch"
	"tor2json/internal/bencode"
	"tor2json/internal/config"
	"tor2json/internal/render"
	"tor2json/internal/source"
	"tor2json/internal/summary"
	"tor2json/internal/web"
)

func summaryOptions(cfg config.Config) summary.Options {
	return summary.Options{MaxFiles: cfg.Output.MaxFiles}
}

// runSingle handles every command taking one torrent file.
func runSingle(ctx context.Context, w io.Writer, src *source.Reader, cfg config.Config, cmd string, ref string) error {
	data, err := src.Read(ctx, ref)
	if err != nil {
		return err
	}

	if cmd == "decode" {
		v, err := bencode.Decode(data)
		if err != nil {
			return errgo.Wrap(err, "failed to decode torrent file")
		}

		return render.Dump(w, v)
	}

	s, err := summary.FromBytes(data, summaryOptions(cfg))
	if err != nil {
		return errgo.Wrap(err, "failed to parse torrent file")
	}

	switch cmd {
	case "pretty":
		return render.Pretty(w, s)
	case "filenames":
		return render.Filenames(w, s)
	}

	return render.JSON(w, s, cfg.Output.Indent)
}

func runBatch(ctx context.Context, cfg config.Config, root string) error {
	root, err := source.ExpandHome(root)
	if err != nil {
		return err
	}

	results, err := batch.Run(ctx, root, batch.Options{
		Summary: summaryOptions(cfg),
		Workers: cfg.Batch.Workers,
		MaxSize: cfg.Fetch.MaxSize,
	})
	if err != nil {
		return err
	}

	if err := render.JSON(os.Stdout, results, cfg.Output.Indent); err != nil {
		return err
	}

	failed := lo.CountBy(results, func(r batch.Result) bool { return r.Err != nil })
	if failed != 0 {
		return fmt.Errorf("%d of %d torrent files failed", failed, len(results))
	}

	return nil
}

func serve(cfg config.Config, debug bool) error {
	server := &http.Server{
		Addr: cfg.Serve.Address,
		Handler: web.New(web.Options{
			Summary:   summaryOptions(cfg),
			MaxBody:   cfg.Serve.MaxBody,
			CacheSize: cfg.Serve.CacheSize,
			Debug:     debug,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var done = make(chan error, 1)

	go func() {
		fmt.Println("start", "http://"+cfg.Serve.Address)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			done <- err
		}
	}()

	signalChan := make(chan os.Signal, 1)

	signal.Notify(
		signalChan,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)

	select {
	case err := <-done:
		return errgo.Wrap(err, "failed to start http server")
	case sig := <-signalChan:
		log.Info().Str("signal", sig.String()).Msg("received signal")
	}

	fmt.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
