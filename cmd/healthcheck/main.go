// Command healthcheck probes the local /health endpoint and exits non-zero
// when the server is not healthy. It is meant for container HEALTHCHECK use.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/tecu23/info-server/pkg/config"
	"github.com/tecu23/info-server/pkg/info"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}

	envFile := flag.String("env-file", ".env", "optional dotenv file to load")
	flag.Parse()

	// Same sources as the server, so the probe targets the bound address.
	cfg, err := config.Load(*envFile)
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	client := &http.Client{Timeout: 2 * time.Second}
	if err := probe(client, healthURL(cfg)); err != nil {
		logger.Error("health check failed", zap.Error(err))
		os.Exit(1)
	}
}

// healthURL points at the health endpoint, replacing wildcard bind hosts
// with loopback.
func healthURL(cfg *config.Config) string {
	host := cfg.Host
	switch host {
	case "", "0.0.0.0":
		host = "127.0.0.1"
	case "::":
		host = "::1"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(cfg.Port)) + "/health"
}

func probe(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body info.HealthReport
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding health response: %w", err)
	}
	if body.Status != info.StatusHealthy {
		return fmt.Errorf("service reports %q", body.Status)
	}
	return nil
}
