package http

import (
	"encoding/json"
	"net/http"

	"orghierarchy/src/domain"
)

func (s *Server) CreateRelationship(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	if owner == "" {
		http.Error(w, "owner is required", http.StatusBadRequest)
		return
	}

	var request RelationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	edge, err := s.hierarchyService.CreateRelationship(r.Context(), owner, domain.RelationshipInput{
		SeniorID: request.SeniorID,
		JuniorID: request.JuniorID,
		Relation: request.Relation,
	})
	if err != nil {
		s.logger.Error("Failed to create relationship",
			"owner", owner,
			"senior", request.SeniorID,
			"junior", request.JuniorID,
			"error", err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, MapEdgeToResponse(edge))
}
