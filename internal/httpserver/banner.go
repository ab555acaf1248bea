package httpserver

import (
	"fmt"
	"io"
	"strings"

	"github.com/alscos/sample-app/internal/config"
)

const bannerRule = "========================================"

// Endpoints lists the routes announced in the startup banner.
var Endpoints = []struct {
	Path, Description string
}{
	{"/", "Welcome message"},
	{"/health", "Health check"},
	{"/version", "Version info"},
	{"/info", "Detailed info"},
	{"/ready", "Readiness probe"},
	{"/live", "Liveness probe"},
}

// WriteBanner prints the startup banner once the listener is bound.
func WriteBanner(w io.Writer, cfg config.Config, listenAddr, hostname string) error {
	var b strings.Builder
	fmt.Fprintln(&b, bannerRule)
	fmt.Fprintln(&b, "🚀 Server started successfully!")
	fmt.Fprintf(&b, "📝 Version: %s\n", cfg.Version)
	fmt.Fprintf(&b, "🌍 Environment: %s\n", cfg.Environment)
	fmt.Fprintf(&b, "🔗 Listening on: http://%s\n", listenAddr)
	fmt.Fprintf(&b, "💻 Hostname: %s\n", hostname)
	fmt.Fprintln(&b, bannerRule)
	fmt.Fprintln(&b, "Available endpoints:")
	for _, e := range Endpoints {
		fmt.Fprintf(&b, "  GET  %-11s - %s\n", e.Path, e.Description)
	}
	fmt.Fprintln(&b, bannerRule)

	_, err := io.WriteString(w, b.String())
	return err
}
