package hierarchy

import (
	"orghierarchy/src/domain"
	"orghierarchy/src/domain/entities"
	"orghierarchy/src/repositories"
)

// HierarchyService holds the org-chart graph engine: relationship creation
// (single and bulk), cycle detection, and the three read queries. It keeps no
// state of its own; everything lives in the edge store.
type HierarchyService struct {
	hierarchyQueryRepository  *repositories.HierarchyQueryRepository
	cachedHierarchyRepository *repositories.CachedHierarchyRepository
	hierarchyWriteRepository  *repositories.HierarchyWriteRepository
	employeeRepository        *repositories.EmployeeRepository
}

func NewHierarchyService(
	hierarchyQueryRepository *repositories.HierarchyQueryRepository,
	cachedHierarchyRepository *repositories.CachedHierarchyRepository,
	hierarchyWriteRepository *repositories.HierarchyWriteRepository,
	employeeRepository *repositories.EmployeeRepository,
) *HierarchyService {
	return &HierarchyService{
		hierarchyQueryRepository:  hierarchyQueryRepository,
		cachedHierarchyRepository: cachedHierarchyRepository,
		hierarchyWriteRepository:  hierarchyWriteRepository,
		employeeRepository:        employeeRepository,
	}
}

// buildForest monta a floresta: um nó por employee id, juniors pendurados no
// senior, e como raízes os ids que nunca aparecem como junior.
func buildForest(edges []entities.HierarchyEdge, names map[string]string) []*domain.HierarchyNode {
	nodes := make(map[string]*domain.HierarchyNode, len(edges))
	var order []string

	ensure := func(id string) *domain.HierarchyNode {
		if node, ok := nodes[id]; ok {
			return node
		}

		name, ok := names[id]
		if !ok {
			name = id
		}

		node := &domain.HierarchyNode{
			ID:       id,
			Name:     name,
			Children: make([]*domain.HierarchyNode, 0),
		}
		nodes[id] = node
		order = append(order, id)
		return node
	}

	juniorIDs := make(map[string]bool, len(edges))
	for _, edge := range edges {
		senior := ensure(edge.SeniorID)
		junior := ensure(edge.JuniorID)
		senior.Children = append(senior.Children, junior)
		juniorIDs[edge.JuniorID] = true
	}

	roots := make([]*domain.HierarchyNode, 0)
	for _, id := range order {
		if !juniorIDs[id] {
			roots = append(roots, nodes[id])
		}
	}

	return roots
}
