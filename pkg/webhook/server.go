package webhook

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Server is the handle for a running webhook listener. Lifecycle belongs
// to the caller: StartServer returns it, Shutdown stops it.
type Server struct {
	http *http.Server
	addr net.Addr
}

// StartServer binds the handler's routes to a listening socket. onStart,
// when non-nil, runs once the socket is bound, before the first request is
// served. Handler errors surface as 500s via gin's recovery middleware;
// they never crash the process.
func (h *Handler) StartServer(port int, onStart func()) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.String(http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	h.Routes(r)

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: r}
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, err
	}

	h.log.Info().Int("port", port).Msg("webhook server listening")
	if onStart != nil {
		onStart()
	}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			h.log.Error().Err(err).Msg("webhook server stopped")
		}
	}()

	return &Server{http: srv, addr: ln.Addr()}, nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() net.Addr {
	return s.addr
}

// Shutdown stops the server, waiting for in-flight requests up to the
// context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
