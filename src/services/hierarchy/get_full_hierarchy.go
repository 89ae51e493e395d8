package hierarchy

import (
	"context"
	"fmt"

	"orghierarchy/src/domain"
)

// GetFullHierarchy renders the tenant's whole forest. A tenant may have more
// than one top-level manager, so zero or more roots is a valid answer.
func (hs *HierarchyService) GetFullHierarchy(ctx context.Context, owner string) ([]*domain.HierarchyNode, error) {
	edges, err := hs.cachedHierarchyRepository.AllForOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("HierarchyService.GetFullHierarchy - failed to load edges: %w", err)
	}

	if len(edges) == 0 {
		return []*domain.HierarchyNode{}, nil
	}

	idSet := make(map[string]bool, len(edges)*2)
	ids := make([]string, 0, len(edges)*2)
	for _, edge := range edges {
		for _, id := range []string{edge.SeniorID, edge.JuniorID} {
			if !idSet[id] {
				idSet[id] = true
				ids = append(ids, id)
			}
		}
	}

	names, err := hs.employeeRepository.NamesByIDs(ctx, owner, ids)
	if err != nil {
		return nil, fmt.Errorf("HierarchyService.GetFullHierarchy - failed to resolve names: %w", err)
	}

	return buildForest(edges, names), nil
}
