// Command nokogiri runs the link-preview HTTP service.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/hideki0403/nokogiri"
)

var version = "dev" // set with -ldflags "-X main.version=..."

func main() {
	cfg, err := nokogiri.LoadConfig()
	if err != nil {
		if err == nokogiri.ErrConfigBootstrapped {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "nokogiri:", err)
		os.Exit(1)
	}
	nokogiri.SetGlobalConfig(cfg)

	logger := nokogiri.Logger()

	ctx := context.Background()
	cache, err := nokogiri.NewSummaryCache(ctx, cfg.Cache)
	if err != nil {
		// Per spec §4.3: refuse to run only when the cache is configured
		// enabled and its initial connectivity probe fails.
		logger.Error("cache unavailable at startup", "error", err)
		os.Exit(1)
	}
	nokogiri.SetGlobalCache(cache)

	client, err := nokogiri.NewHTTPClient(cfg, "nokogiri", version)
	if err != nil {
		logger.Error("failed to build http client", "error", err)
		os.Exit(1)
	}
	nokogiri.SetGlobalClient(client)

	addr := net.JoinHostPort(cfg.Server.Host, fmt.Sprint(cfg.Server.Port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      nokogiri.Mux(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
