package http

import (
	"net/http"
)

func (s *Server) GetFullHierarchy(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	if owner == "" {
		http.Error(w, "owner is required", http.StatusBadRequest)
		return
	}

	forest, err := s.hierarchyService.GetFullHierarchy(r.Context(), owner)
	if err != nil {
		s.logger.Error("Failed to fetch hierarchy", "owner", owner, "error", err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, forest)
}

func (s *Server) GetDirectReports(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	employeeID := r.PathValue("id")
	if owner == "" || employeeID == "" {
		http.Error(w, "owner and employee id are required", http.StatusBadRequest)
		return
	}

	reports, err := s.hierarchyService.GetDirectReports(r.Context(), owner, employeeID)
	if err != nil {
		s.logger.Error("Failed to fetch direct reports", "owner", owner, "employee", employeeID, "error", err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MapEdgesToResponse(reports))
}

func (s *Server) GetManagementChain(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	employeeID := r.PathValue("id")
	if owner == "" || employeeID == "" {
		http.Error(w, "owner and employee id are required", http.StatusBadRequest)
		return
	}

	chain, err := s.hierarchyService.GetManagementChain(r.Context(), owner, employeeID)
	if err != nil {
		s.logger.Error("Failed to fetch management chain", "owner", owner, "employee", employeeID, "error", err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MapEdgesToResponse(chain))
}
