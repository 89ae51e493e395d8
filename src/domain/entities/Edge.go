package entities

import (
	"time"
)

// Relation labels carried by an edge. Display-only, no structural meaning.
const (
	RelationManager  = "Manager"
	RelationTeamLead = "Team Lead"
	RelationMentor   = "Mentor"
	RelationOther    = "Other"
)

// ValidRelation reports whether the label belongs to the closed relation set.
func ValidRelation(relation string) bool {
	switch relation {
	case RelationManager, RelationTeamLead, RelationMentor, RelationOther:
		return true
	}
	return false
}

// É a "aresta" do grafo: senior gerencia junior, sempre dentro de um owner.
type HierarchyEdge struct {
	ID       int64  `json:"id"`
	Owner    string `json:"owner"`
	SeniorID string `json:"senior_id"`
	JuniorID string `json:"junior_id"`
	Relation string `json:"relation"`
	// Derived ancestry metadata, computed once at insert time from the
	// senior's then-current reporting edge. Never recomputed afterwards.
	HierarchyLevel int       `json:"hierarchy_level"`
	Path           string    `json:"path"`
	RootManager    string    `json:"root_manager"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
