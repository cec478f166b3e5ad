package spectate

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Server serves a Hub on /ws.
type Server struct {
	Hub *Hub

	srv *http.Server
	ln  net.Listener
}

// Listen binds addr and starts serving in the background.
func Listen(addr string, hub *Hub) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("spectate: cannot listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)

	s := &Server{
		Hub: hub,
		srv: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:  ln,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			hub.log.Error("spectator server stopped", "error", err)
		}
	}()
	hub.log.Info("spectator feed listening", "address", ln.Addr().String())
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown closes the hub and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Hub.Close()
	return s.srv.Shutdown(ctx)
}
