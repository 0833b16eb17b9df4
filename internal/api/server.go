// Package api exposes the MCP server over streamable HTTP for clients that
// cannot spawn a stdio subprocess.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server routes HTTP traffic to the MCP handler.
type Server struct {
	router chi.Router
}

// NewServer wraps mcpServer in the streamable HTTP transport with bearer
// auth and request logging.
func NewServer(mcpServer *mcp.Server, apiKey string, log *slog.Logger) *Server {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, nil)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(apiKey))
		r.Handle("/mcp", handler)
	})

	return &Server{router: r}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
