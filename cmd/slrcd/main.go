/*
Slrcd starts a compile-as-a-service server and begins listening for new
connections.

Usage:

	slrcd [flags]
	slrcd [flags] -c CONFIG_FILE

Once started, the server will listen for HTTP requests and respond to them
using the REST API under /api/v1. By default it reads its configuration from
slrc.toml in the current directory; this can be changed with the --config/-c
flag. The listen address configured in that file can be overridden with
--listen/-l.

The flags are:

	-v, --version
		Give the current version of the program and then exit.

	-c, --config CONFIG_FILE
		Read server and grammar configuration from CONFIG_FILE. Defaults to
		"slrc.toml".

	-l, --listen LISTEN_ADDRESS
		Listen on the given address, overriding the bind_address set in the
		config file. Must be in BIND_ADDRESS:PORT or :PORT format.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dekarrin/slrc/internal/config"
	"github.com/dekarrin/slrc/internal/slrlog"
	"github.com/dekarrin/slrc/internal/version"
	"github.com/dekarrin/slrc/server"
	"github.com/spf13/pflag"
)

const (
	exitSuccess = 0
	exitUsage   = 1
	exitConfig  = 2
	exitRuntime = 3
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the program and then exit.")
	flagConfig  = pflag.StringP("config", "c", "slrc.toml", "Read configuration from the given TOML file.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address, overriding the config file.")
)

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("slrc server %s\n", version.Current)
		return exitSuccess
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		return exitUsage
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		return exitConfig
	}

	if *flagListen != "" {
		cfg.Server.BindAddress = *flagListen
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		return exitConfig
	}

	store, err := server.Connect(cfg.Server)
	if err != nil {
		slrlog.Errorf("could not connect to persistence backend: %s", err.Error())
		return exitRuntime
	}

	srv := server.New(cfg.Server.BindAddress, store, []byte(cfg.Server.TokenSecret), time.Second)

	shutdownErr := make(chan error, 1)
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		slrlog.Infof("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	slrlog.Infof("listening on %s...", cfg.Server.BindAddress)
	if err := srv.ListenAndServe(); err != nil {
		slrlog.Errorf("server error: %s", err.Error())
		return exitRuntime
	}

	if err := <-shutdownErr; err != nil {
		slrlog.Errorf("error during shutdown: %s", err.Error())
		return exitRuntime
	}

	return exitSuccess
}
