package hierarchy

import (
	"context"
	"fmt"

	"orghierarchy/src/domain/entities"
)

// ancestors walks the upward chain of managers above nodeID, nearest first.
// Cada hop é uma ida ao banco: busca todas as arestas cujo junior está na
// fronteira e avança a fronteira para os seniors ainda não visitados.
// The walk is bounded by the tenant's edge count + 1 so a corrupted (cyclic)
// store can never loop forever; under the DAG invariant the frontier empties
// well before the bound.
func (hs *HierarchyService) ancestors(ctx context.Context, owner string, nodeID string) ([]entities.HierarchyEdge, error) {
	maxSteps, err := hs.hierarchyQueryRepository.CountForOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("HierarchyService.ancestors - failed to bound the walk: %w", err)
	}

	visited := map[string]bool{nodeID: true}
	frontier := []string{nodeID}
	var chain []entities.HierarchyEdge

	for steps := 0; len(frontier) > 0 && steps <= maxSteps; steps++ {
		edges, err := hs.hierarchyQueryRepository.FindByJuniors(ctx, owner, frontier)
		if err != nil {
			return nil, fmt.Errorf("HierarchyService.ancestors - hop %d failed: %w", steps, err)
		}

		frontier = frontier[:0]
		for _, edge := range edges {
			chain = append(chain, edge)
			if !visited[edge.SeniorID] {
				visited[edge.SeniorID] = true
				frontier = append(frontier, edge.SeniorID)
			}
		}
	}

	return chain, nil
}
