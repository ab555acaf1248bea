package httpserver

import (
	"net"

	"github.com/alscos/sample-app/internal/config"
)

// Listen binds IPv4 on all interfaces so the address reported in the
// banner reads 0.0.0.0:<port> rather than the dual-stack [::]:<port>.
func Listen(cfg config.Config) (net.Listener, error) {
	return net.Listen("tcp4", cfg.ListenAddr())
}
