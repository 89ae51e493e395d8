package hierarchy

import (
	"context"
	"fmt"

	"orghierarchy/src/domain"
	"orghierarchy/src/domain/entities"
)

// normalizeRelation aplica o default e rejeita labels fora do conjunto fechado.
func normalizeRelation(relation string) (string, error) {
	if relation == "" {
		return entities.RelationManager, nil
	}
	if !entities.ValidRelation(relation) {
		return "", domain.ErrInvalidRelation
	}
	return relation, nil
}

// validateRelationship runs the structural checks for one proposed edge, in
// order, short-circuiting on the first failure:
//  1. both ids present
//  2. both employees exist for the tenant
//  3. no self-supervision
//  4. no duplicate edge
//  5. no cycle: the junior must not already be a transitive manager of the
//     senior
//
// Read-only; the store's unique constraint closes whatever race is left
// between these checks and the actual insert.
func (hs *HierarchyService) validateRelationship(ctx context.Context, owner string, link domain.RelationshipInput) error {
	if link.SeniorID == "" || link.JuniorID == "" {
		return domain.ErrMissingFields
	}

	existing, err := hs.employeeRepository.ExistingIDs(ctx, owner, []string{link.SeniorID, link.JuniorID})
	if err != nil {
		return fmt.Errorf("HierarchyService.validateRelationship - employee lookup failed: %w", err)
	}
	if !existing[link.SeniorID] || !existing[link.JuniorID] {
		return domain.ErrEmployeeNotFound
	}

	if link.SeniorID == link.JuniorID {
		return domain.ErrSelfRelationship
	}

	exists, err := hs.hierarchyQueryRepository.Exists(ctx, owner, link.SeniorID, link.JuniorID)
	if err != nil {
		return fmt.Errorf("HierarchyService.validateRelationship - duplicate check failed: %w", err)
	}
	if exists {
		return domain.ErrDuplicateRelationship
	}

	chain, err := hs.ancestors(ctx, owner, link.SeniorID)
	if err != nil {
		return fmt.Errorf("HierarchyService.validateRelationship - cycle check failed: %w", err)
	}
	for _, edge := range chain {
		if edge.SeniorID == link.JuniorID {
			return domain.ErrCircularReference
		}
	}

	return nil
}
