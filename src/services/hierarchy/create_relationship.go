package hierarchy

import (
	"context"
	"fmt"

	"orghierarchy/src/domain"
	"orghierarchy/src/domain/entities"
)

// CreateRelationship validates one proposed senior->junior edge and persists
// it with its derived ancestry metadata.
func (hs *HierarchyService) CreateRelationship(ctx context.Context, owner string, link domain.RelationshipInput) (entities.HierarchyEdge, error) {
	relation, err := normalizeRelation(link.Relation)
	if err != nil {
		return entities.HierarchyEdge{}, err
	}
	link.Relation = relation

	if err := hs.validateRelationship(ctx, owner, link); err != nil {
		return entities.HierarchyEdge{}, err
	}

	edge, err := hs.hierarchyWriteRepository.Insert(ctx, owner, link)
	if err != nil {
		// Corrida entre a validação e o insert: a unique constraint decide.
		return entities.HierarchyEdge{}, fmt.Errorf("HierarchyService.CreateRelationship - insert failed: %w", err)
	}

	return edge, nil
}
