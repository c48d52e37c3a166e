package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/speq1/speq-backend/internal/interfaces"
	"github.com/speq1/speq-backend/internal/logger"
)

// Server is the HTTP surface: a liveness root and the one aggregation
// endpoint. Aggregation itself is delegated to the engine; the server
// only translates between HTTP and the Aggregator contract.
type Server struct {
	router *mux.Router
	agg    interfaces.Aggregator
	http   *http.Server
}

func New(port int, agg interfaces.Aggregator) *Server {
	s := &Server{
		router: mux.NewRouter(),
		agg:    agg,
	}
	s.routes()

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // aggregation runs synchronously per request
	}
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	s.router.HandleFunc("/api/data", s.handleData).Methods(http.MethodGet)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving HTTP until Shutdown or a listener error.
func (s *Server) ListenAndServe() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "Server is running!")
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := s.agg.Run(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Aggregation request failed", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to fetch data",
			"details": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(context.Background(), "Failed to encode response", "error", err)
	}
}
