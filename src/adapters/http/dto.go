package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"orghierarchy/src/domain"
	"orghierarchy/src/domain/entities"
)

type RelationshipRequest struct {
	SeniorID string `json:"senior_id"`
	JuniorID string `json:"junior_id"`
	Relation string `json:"relation,omitempty"`
}

type BulkRelationshipsRequest struct {
	Links []RelationshipRequest `json:"links"`
}

type EmployeeSyncRequest struct {
	Employees []EmployeeDTO `json:"employees"`
}

type EmployeeDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EdgeDTO struct {
	ID             int64     `json:"id"`
	SeniorID       string    `json:"senior_id"`
	JuniorID       string    `json:"junior_id"`
	Relation       string    `json:"relation"`
	HierarchyLevel int       `json:"hierarchy_level"`
	Path           string    `json:"path"`
	RootManager    string    `json:"root_manager"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type BulkCreatedResponse struct {
	Created []EdgeDTO `json:"created"`
	Count   int       `json:"count"`
}

type BulkRejectedResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Invalid []domain.BulkRejection `json:"invalid"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func MapEdgeToResponse(edge entities.HierarchyEdge) EdgeDTO {
	return EdgeDTO{
		ID:             edge.ID,
		SeniorID:       edge.SeniorID,
		JuniorID:       edge.JuniorID,
		Relation:       edge.Relation,
		HierarchyLevel: edge.HierarchyLevel,
		Path:           edge.Path,
		RootManager:    edge.RootManager,
		CreatedAt:      edge.CreatedAt,
		UpdatedAt:      edge.UpdatedAt,
	}
}

func MapEdgesToResponse(edges []entities.HierarchyEdge) []EdgeDTO {
	response := make([]EdgeDTO, 0, len(edges))
	for _, edge := range edges {
		response = append(response, MapEdgeToResponse(edge))
	}
	return response
}

// writeDomainError traduz os erros de validação do domínio para o par
// (status HTTP, code) esperado pelos clients.
func writeDomainError(w http.ResponseWriter, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, domain.ErrMissingFields):
		status, code = http.StatusBadRequest, "MISSING_FIELDS"
	case errors.Is(err, domain.ErrInvalidRelation):
		status, code = http.StatusBadRequest, "INVALID_RELATION"
	case errors.Is(err, domain.ErrSelfRelationship):
		status, code = http.StatusBadRequest, "SELF_LINK"
	case errors.Is(err, domain.ErrEmployeeNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicateRelationship):
		status, code = http.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrCircularReference):
		status, code = http.StatusConflict, "CYCLE"
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL",
			Message: domain.ErrUnavailableServer.Error(),
		})
		return
	}

	writeJSON(w, status, ErrorResponse{Code: code, Message: unwrapMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// unwrapMessage keeps only the sentinel's message, without the call-site
// wrapping prefixes.
func unwrapMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
