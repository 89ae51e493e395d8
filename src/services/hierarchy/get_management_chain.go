package hierarchy

import (
	"context"
	"fmt"

	"orghierarchy/src/domain"
)

// GetManagementChain returns the chain of edges above an employee, nearest
// ancestor first, up to the root of the chain.
func (hs *HierarchyService) GetManagementChain(ctx context.Context, owner string, employeeID string) (domain.ManagementChain, error) {
	chain, err := hs.ancestors(ctx, owner, employeeID)
	if err != nil {
		return nil, fmt.Errorf("HierarchyService.GetManagementChain - walk failed: %w", err)
	}

	if chain == nil {
		chain = domain.ManagementChain{}
	}
	return domain.ManagementChain(chain), nil
}
