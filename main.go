// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/automaxprocs/maxprocs"
	"gopkg.in/natefinch/lumberjack.v2"

	"tor2json/internal/config"
	"tor2json/internal/source"
	"tor2json/internal/version"
)

const usage = `Usage: tor2json [flags] [command] <input>

Commands:
  summary <input>    print json summary of a torrent file (default)
  pretty <input>     print human readable summary
  decode <input>     dump decoded bencode tree
  filenames <input>  print one file path per line
  batch <dir>        summarize every .torrent file under dir
  serve              start http server

<input> is a file path, "-" for stdin, or a http(s) url.

Flags:
`

func main() {
	setupFlagsAndEnvParser()

	if viper.GetBool("version") {
		fmt.Println(version.Print())
		return
	}

	setupLogger()

	cfg := mustParseConfig()

	cmd, args := splitCommand(pflag.Args())

	log.Debug().Str("command", cmd).Strs("args", args).Msg("start")

	ctx := context.Background()

	var err error
	switch cmd {
	case "serve":
		setMaxProcs()
		err = serve(cfg, viper.GetBool("debug"))
	case "batch":
		setMaxProcs()
		err = runBatch(ctx, cfg, mustSingleArg(cmd, args))
	default:
		src := source.New(source.Options{
			UserAgent: cfg.Fetch.UserAgent,
			Timeout:   cfg.Fetch.Timeout.Std(),
			MaxSize:   cfg.Fetch.MaxSize,
		})

		err = runSingle(ctx, os.Stdout, src, cfg, cmd, mustSingleArg(cmd, args))
	}

	if err != nil {
		errExit(err)
	}
}

func setupFlagsAndEnvParser() {
	pflag.String("config-file", "", "path to config file (default ~/.config/tor2json/config.toml)")

	pflag.Int("indent", 2, "json indent, 0 for compact output")
	pflag.Int("max-files", 0, "only keep first N files, 0 means no limit")
	pflag.Int("workers", 4, "concurrent workers for batch command")
	pflag.String("address", "127.0.0.1:8002", "listen address for serve command")

	pflag.Bool("log-json", false, "log as json format")
	pflag.String("log-level", "error", "log level")
	pflag.String("log-file", "", "also write log to this file")

	pflag.Bool("debug", false, "enable debug endpoints for serve command")
	pflag.BoolP("version", "v", false, "print version and exit")

	pflag.Usage = func() {
		_, _ = fmt.Fprint(os.Stderr, usage)
		pflag.PrintDefaults()
	}

	// this avoids 'pflag: help requested' error when calling for help message.
	if slices.Contains(os.Args[1:], "--help") || slices.Contains(os.Args[1:], "-h") {
		pflag.Usage()
		_, _ = fmt.Fprintln(os.Stderr, "\nNote: command arguments and TOR2JSON_* env override config file.")
		os.Exit(0)
		return
	}

	pflag.Parse()

	viper.SetEnvPrefix("TOR2JSON")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	lo.Must0(viper.BindPFlags(pflag.CommandLine), "failed to parse combine argument with env")
}

var commands = []string{"summary", "pretty", "decode", "filenames", "batch", "serve"}

// splitCommand treats a leading unknown word as the input of the default command.
func splitCommand(args []string) (string, []string) {
	if len(args) != 0 && slices.Contains(commands, args[0]) {
		return args[0], args[1:]
	}

	return "summary", args
}

func mustSingleArg(cmd string, args []string) string {
	if len(args) != 1 {
		pflag.Usage()
		errExit(fmt.Sprintf("\ncommand %q expects exactly 1 argument, got %d", cmd, len(args)))
	}

	return args[0]
}

func errExit(msg ...any) {
	_, _ = fmt.Fprintln(os.Stderr, msg...)
	os.Exit(1)
}

func setMaxProcs() {
	if runtime.GOOS != "linux" {
		return
	}

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, a ...any) {
		log.Debug().Msgf(format, a...)
	})); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Failed to set GOMAXPROCS automatically.")
		_, _ = fmt.Fprintln(os.Stderr, "Consider to set env manually if you are running with cgroup.")
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func parseLogLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}

	errExit(fmt.Sprintf("unknown log level %q, only trace/debug/info/warn/error is allowed", s))

	return zerolog.NoLevel
}

// setupLogger writes to stderr, stdout carries command output.
func setupLogger() {
	jsonLog := viper.GetBool("log-json")
	logFile := viper.GetString("log-file")
	logLevel := parseLogLevel(viper.GetString("log-level"))

	var w io.Writer = os.Stderr

	if !jsonLog {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	if logFile != "" {
		p, err := source.ExpandHome(logFile)
		if err != nil {
			errExit("failed to resolve log file path", err)
		}

		rotation := &lumberjack.Logger{
			Filename:   p,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, //days
		}
		w = zerolog.MultiLevelWriter(rotation, w)
	}

	log.Logger = log.Output(w).Level(logLevel)
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "tor2json", "config.toml")
}

func mustParseConfig() config.Config {
	configFilePath := viper.GetString("config-file")
	if configFilePath == "" {
		configFilePath = defaultConfigPath()
	} else {
		p, err := source.ExpandHome(configFilePath)
		if err != nil {
			errExit("failed to resolve config file path", err)
		}
		configFilePath = p
	}

	cfg, err := config.LoadFromFile(configFilePath)
	if err != nil {
		errExit("failed to load config", err)
	}

	// only explicit flags and env override config file.
	if viper.IsSet("indent") {
		cfg.Output.Indent = viper.GetInt("indent")
	}
	if viper.IsSet("max-files") {
		cfg.Output.MaxFiles = viper.GetInt("max-files")
	}
	if viper.IsSet("workers") {
		cfg.Batch.Workers = viper.GetInt("workers")
	}
	if viper.IsSet("address") {
		cfg.Serve.Address = viper.GetString("address")
	}

	if err := cfg.Validate(); err != nil {
		errExit(err)
	}

	return cfg
}
