package hierarchy

import (
	"context"
	"errors"
	"fmt"

	"orghierarchy/src/domain"
	"orghierarchy/src/domain/entities"
)

// BulkCreateRelationships validates a whole batch against the pre-batch graph
// state and only writes if every candidate passes. Candidates are NOT applied
// to each other's intermediate state during validation, so two complementary
// edges that are individually valid but jointly cyclic slip through this pass
// — observable behavior, kept on purpose.
//
// On rejection the returned slice carries one reason per offending candidate
// and nothing is written. On acceptance all inserts run in one transaction;
// a late store failure rolls everything back and is returned as an error that
// states zero edges were committed.
func (hs *HierarchyService) BulkCreateRelationships(ctx context.Context, owner string, links []domain.RelationshipInput) ([]entities.HierarchyEdge, []domain.BulkRejection, error) {
	if len(links) == 0 {
		return nil, nil, fmt.Errorf("HierarchyService.BulkCreateRelationships - batch must contain at least one link")
	}

	normalized := make([]domain.RelationshipInput, len(links))
	var invalid []domain.BulkRejection

	for i, link := range links {
		relation, err := normalizeRelation(link.Relation)
		if err == nil {
			link.Relation = relation
			err = hs.validateRelationship(ctx, owner, link)
		}

		if err != nil {
			reason, ok := rejectionReason(err)
			if !ok {
				return nil, nil, fmt.Errorf("HierarchyService.BulkCreateRelationships - candidate %d: %w", i, err)
			}
			invalid = append(invalid, domain.BulkRejection{
				Index:    i,
				SeniorID: link.SeniorID,
				JuniorID: link.JuniorID,
				Reason:   reason,
			})
			continue
		}

		normalized[i] = link
	}

	if len(invalid) > 0 {
		return nil, invalid, nil
	}

	created, err := hs.hierarchyWriteRepository.BulkInsert(ctx, owner, normalized)
	if err != nil {
		return nil, nil, fmt.Errorf("HierarchyService.BulkCreateRelationships - bulk insert failed: %w", err)
	}

	return created, nil, nil
}

// rejectionReason maps a validation error to the per-candidate reason label;
// anything else is an internal failure.
func rejectionReason(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return "Missing IDs", true
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return "Not found", true
	case errors.Is(err, domain.ErrSelfRelationship):
		return "Self link", true
	case errors.Is(err, domain.ErrInvalidRelation):
		return "Invalid relation", true
	case errors.Is(err, domain.ErrDuplicateRelationship):
		return "Duplicate", true
	case errors.Is(err, domain.ErrCircularReference):
		return "Circular", true
	}
	return "", false
}
