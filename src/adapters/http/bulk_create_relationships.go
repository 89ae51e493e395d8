package http

import (
	"encoding/json"
	"net/http"

	"orghierarchy/src/domain"
)

func (s *Server) BulkCreateRelationships(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	if owner == "" {
		http.Error(w, "owner is required", http.StatusBadRequest)
		return
	}

	var request BulkRelationshipsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if len(request.Links) == 0 {
		http.Error(w, "links must be a non-empty array", http.StatusBadRequest)
		return
	}

	links := make([]domain.RelationshipInput, 0, len(request.Links))
	for _, link := range request.Links {
		links = append(links, domain.RelationshipInput{
			SeniorID: link.SeniorID,
			JuniorID: link.JuniorID,
			Relation: link.Relation,
		})
	}

	created, invalid, err := s.hierarchyService.BulkCreateRelationships(r.Context(), owner, links)
	if err != nil {
		s.logger.Error("Failed to bulk create relationships",
			"owner", owner,
			"count", len(links),
			"error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL",
			Message: domain.ErrUnavailableServer.Error(),
		})
		return
	}

	if len(invalid) > 0 {
		writeJSON(w, http.StatusBadRequest, BulkRejectedResponse{
			Code:    "BATCH_REJECTED",
			Message: "Some links invalid",
			Invalid: invalid,
		})
		return
	}

	writeJSON(w, http.StatusCreated, BulkCreatedResponse{
		Created: MapEdgesToResponse(created),
		Count:   len(created),
	})
}
