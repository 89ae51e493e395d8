package hierarchy

import (
	"context"
	"fmt"

	"orghierarchy/src/domain/entities"
)

// GetDirectReports returns the edges whose senior is the given employee —
// only the immediate reports, never the transitive ones.
func (hs *HierarchyService) GetDirectReports(ctx context.Context, owner string, employeeID string) ([]entities.HierarchyEdge, error) {
	edges, err := hs.hierarchyQueryRepository.FindBySenior(ctx, owner, employeeID)
	if err != nil {
		return nil, fmt.Errorf("HierarchyService.GetDirectReports - failed to load edges: %w", err)
	}

	if edges == nil {
		edges = []entities.HierarchyEdge{}
	}
	return edges, nil
}
