package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener the HTTP server accepts connections on,
// plain TCP or TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is the API server lifecycle driven by main. Start blocks until the
// server stops; Stop drains in-flight requests until ctx expires.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
