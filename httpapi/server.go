package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Server runs the API on a TCP address until its context is canceled.
type Server struct {
	addr    string
	handler http.Handler
}

// NewServer binds the API to addr.
func NewServer(addr string, api *API) *Server {
	return &Server{
		addr:    addr,
		handler: api.Handler(),
	}
}

// Run serves requests until ctx is canceled, then drains in-flight
// requests within shutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.handler,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("membership API listening on %s", s.addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
