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

	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"

	"github.com/goccy/tablenum/internal/logger"
	"github.com/goccy/tablenum/server"
	"github.com/goccy/tablenum/types"
)

type option struct {
	Host         string           `description:"specify the host name" long:"host" default:"0.0.0.0"`
	Port         uint16           `description:"specify the port number" long:"port" default:"9060"`
	LogLevel     server.LogLevel  `description:"specify the log level (debug/info/warn/error)" long:"log-level" default:"error"`
	LogFormat    server.LogFormat `description:"specify the log format (console/json)" long:"log-format" default:"console"`
	DataFromYAML string           `description:"specify the path to the YAML file that contains the initial tables" long:"data-from-yaml"`
	DataFromJSON string           `description:"specify the path to the JSON file that contains the initial tables" long:"data-from-json"`
	Type         types.Type       `description:"specify the type of the tokens given as arguments (INT8/INT16/INT32/INT64/BIGINTEGER/FLOAT32/FLOAT64/BIGDECIMAL or their SQL aliases)" long:"type"`
	Version      bool             `description:"print version" long:"version" short:"v"`
}

type exitCode int

const (
	exitOK    exitCode = 0
	exitError exitCode = 1
)

var (
	version  string
	revision string
)

func main() {
	os.Exit(int(run()))
}

func run() exitCode {
	args, opt, err := parseOpt()
	if err != nil {
		flagsErr, ok := err.(*flags.Error)
		if !ok {
			fmt.Fprintf(os.Stderr, "[tablenum] unknown parsed option error: %[1]T %[1]v\n", err)
			return exitError
		}
		if flagsErr.Type == flags.ErrHelp {
			return exitOK
		}
		return exitError
	}
	if opt.Version {
		fmt.Fprintf(os.Stdout, "version: %s (%s)\n", version, revision)
		return exitOK
	}
	if len(args) > 0 {
		if err := runParse(os.Stdout, args, opt); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitError
		}
		return exitOK
	}
	if err := runServer(opt); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	return exitOK
}

func parseOpt() ([]string, option, error) {
	var opt option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Usage = "[OPTIONS] [TOKEN...]"
	args, err := parser.Parse()
	return args, opt, err
}

func newServer(opt option) (*server.Server, error) {
	s, err := server.New()
	if err != nil {
		return nil, err
	}
	if err := s.SetLogLevel(opt.LogLevel); err != nil {
		return nil, err
	}
	if err := s.SetLogFormat(opt.LogFormat); err != nil {
		return nil, err
	}
	return s, nil
}

// runParse prints one JSON line per token and fails when any token was rejected.
func runParse(w io.Writer, args []string, opt option) error {
	kind, err := opt.Type.Kind()
	if err != nil {
		return err
	}
	s, err := newServer(opt)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := logger.WithLogger(context.Background(), s.Logger())
	enc := json.NewEncoder(w)
	var failed int
	for _, arg := range args {
		result := server.ParseToken(ctx, arg, kind)
		if result.Error != "" {
			failed++
		}
		if err := enc.Encode(result); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("[tablenum] failed to parse %d of %d tokens", failed, len(args))
	}
	return nil
}

func runServer(opt option) error {
	s, err := newServer(opt)
	if err != nil {
		return err
	}
	if opt.DataFromYAML != "" {
		if err := s.Load(server.YAMLSource(opt.DataFromYAML)); err != nil {
			return err
		}
	}
	if opt.DataFromJSON != "" {
		if err := s.Load(server.JSONSource(opt.DataFromJSON)); err != nil {
			return err
		}
	}

	ctx := context.Background()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-interrupt
		fmt.Fprintf(os.Stdout, "[tablenum] receive %s. shutdown gracefully\n", sig)
		if err := s.Stop(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "[tablenum] failed to stop: %v\n", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", opt.Host, opt.Port)
	fmt.Fprintf(os.Stdout, "[tablenum] listening at %s\n", addr)
	if err := s.Serve(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
