package server

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/improbable-eng/grpc-web/go/grpcweb"

	"github.com/hazzzi/maenggu-run/internal/buildinfo"
)

// Handler routes native gRPC, grpc-web and plain HTTP requests.
func (s *Server) Handler() http.Handler {
	web := grpcweb.WrapServer(s.grpcServer,
		grpcweb.WithOriginFunc(s.allowOrigin),
		grpcweb.WithWebsockets(false),
	)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/report", s.handleReport)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch {
		case web.IsGrpcWebRequest(req) || web.IsAcceptableGrpcCorsRequest(req):
			web.ServeHTTP(w, req)
		case req.ProtoMajor == 2 && strings.HasPrefix(req.Header.Get("Content-Type"), "application/grpc"):
			s.grpcServer.ServeHTTP(w, req)
		default:
			r.ServeHTTP(w, req)
		}
	})
}

func (s *Server) allowOrigin(origin string) bool {
	allowed := s.settings.Server.AllowedOrigins
	return slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"version": buildinfo.Version,
		"snacks":  s.manager.Snapshot().Snacks,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(s.BuildReport()))
}
