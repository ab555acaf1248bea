package httpserver

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alscos/sample-app/internal/config"
)

func TestListenBannerShowsIPv4Wildcard(t *testing.T) {
	cfg := config.Defaults()
	cfg.Port = 0

	ln, err := Listen(cfg)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	addr := ln.Addr().String()
	if !strings.HasPrefix(addr, "0.0.0.0:") {
		t.Fatalf("listener addr = %q; want 0.0.0.0:<port>", addr)
	}

	var buf bytes.Buffer
	if err := WriteBanner(&buf, cfg, addr, "pod-7f9c"); err != nil {
		t.Fatalf("WriteBanner: %v", err)
	}
	if !strings.Contains(buf.String(), "🔗 Listening on: http://"+addr+"\n") {
		t.Fatalf("banner missing listen line for %s:\n%s", addr, buf.String())
	}
}
