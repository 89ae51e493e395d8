package domain

import (
	"errors"

	"orghierarchy/src/domain/entities"
)

var (
	ErrMissingFields         = errors.New("both seniorId and juniorId are required")
	ErrEmployeeNotFound      = errors.New("one or both employees not found")
	ErrSelfRelationship      = errors.New("cannot create relationship with self")
	ErrInvalidRelation       = errors.New("relation is not a known label")
	ErrDuplicateRelationship = errors.New("relationship already exists")
	ErrCircularReference     = errors.New("this relationship would create a circular reference")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

// ############################################################
// ############ PROCESSO DE ESCRITA DAS ARESTAS ###############
// ############################################################

// RelationshipInput é o DTO de um vínculo proposto (single ou bulk).
type RelationshipInput struct {
	SeniorID string
	JuniorID string
	Relation string
}

// BulkRejection describes one candidate of a rejected batch.
type BulkRejection struct {
	Index    int    `json:"index"`
	SeniorID string `json:"senior_id"`
	JuniorID string `json:"junior_id"`
	Reason   string `json:"reason"`
}

// EmployeeInput é o DTO de um funcionário vindo do collaborator externo.
type EmployeeInput struct {
	ID   string
	Name string
}

// ############################################################
// ############# PROCESSO DE LEITURA DO GRAFO #################
// ############################################################

// HierarchyNode is one node of the rendered forest. A node that is both
// someone's senior and someone's junior appears exactly once and is
// referenced, not duplicated, wherever it is a child.
type HierarchyNode struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Children []*HierarchyNode `json:"children"`
}

// ManagementChain is the upward chain of edges above an employee,
// nearest ancestor first.
type ManagementChain []entities.HierarchyEdge
