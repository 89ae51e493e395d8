package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"orghierarchy/src/repositories"
	"orghierarchy/src/services/hierarchy"
)

// Server representa o servidor HTTP da API
type Server struct {
	logger             *slog.Logger
	server             *http.Server
	mux                *http.ServeMux
	port               int
	hierarchyService   *hierarchy.HierarchyService
	employeeRepository *repositories.EmployeeRepository
}

// NewServer cria uma nova instância do servidor
func NewServer(
	logger *slog.Logger,
	port int,
	hierarchyService *hierarchy.HierarchyService,
	employeeRepository *repositories.EmployeeRepository,
) *Server {
	server := &Server{
		mux:                http.NewServeMux(),
		port:               port,
		logger:             logger,
		hierarchyService:   hierarchyService,
		employeeRepository: employeeRepository,
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Rotas de Leitura
	server.mux.HandleFunc("GET /v1/hierarchy/{owner}", server.GetFullHierarchy)
	server.mux.HandleFunc("GET /v1/hierarchy/{owner}/employees/{id}/reports", server.GetDirectReports)
	server.mux.HandleFunc("GET /v1/hierarchy/{owner}/employees/{id}/chain", server.GetManagementChain)

	// Rotas de Escrita
	server.mux.HandleFunc("POST /v1/hierarchy/{owner}/relationships", server.CreateRelationship)
	server.mux.HandleFunc("POST /v1/hierarchy/{owner}/relationships/bulk", server.BulkCreateRelationships)
	server.mux.HandleFunc("POST /v1/hierarchy/{owner}/employees/sync", server.SyncEmployees)

	return server
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
