package repositories

import (
	"context"
	"fmt"

	"orghierarchy/src/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const edgeColumns = `id, owner, senior_id, junior_id, relation, hierarchy_level, path, root_manager, created_at, updated_at`

type HierarchyQueryRepository struct {
	pool *pgxpool.Pool
}

func NewHierarchyQueryRepository(pool *pgxpool.Pool) *HierarchyQueryRepository {
	return &HierarchyQueryRepository{pool: pool}
}

// Exists reports whether the (owner, senior, junior) edge is already stored.
func (hqr *HierarchyQueryRepository) Exists(ctx context.Context, owner string, seniorID string, juniorID string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM hierarchy_edges WHERE owner = $1 AND senior_id = $2 AND junior_id = $3
	)`

	var exists bool
	if err := hqr.pool.QueryRow(ctx, query, owner, seniorID, juniorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("HierarchyQueryRepository.Exists - query failed: %w", err)
	}

	return exists, nil
}

// FindBySenior loads the direct-report edges of one employee.
func (hqr *HierarchyQueryRepository) FindBySenior(ctx context.Context, owner string, seniorID string) ([]entities.HierarchyEdge, error) {
	query := `SELECT ` + edgeColumns + `
			  FROM hierarchy_edges
			  WHERE owner = $1 AND senior_id = $2
			  ORDER BY id`

	rows, err := hqr.pool.Query(ctx, query, owner, seniorID)
	if err != nil {
		return nil, fmt.Errorf("HierarchyQueryRepository.FindBySenior - query failed: %w", err)
	}
	defer rows.Close()

	return scanEdges(rows)
}

// FindByJuniors loads every edge whose junior is one of the given ids. One
// call per frontier hop of the ancestor walk.
func (hqr *HierarchyQueryRepository) FindByJuniors(ctx context.Context, owner string, juniorIDs []string) ([]entities.HierarchyEdge, error) {
	if len(juniorIDs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + edgeColumns + `
			  FROM hierarchy_edges
			  WHERE owner = $1 AND junior_id = ANY($2)
			  ORDER BY id`

	rows, err := hqr.pool.Query(ctx, query, owner, juniorIDs)
	if err != nil {
		return nil, fmt.Errorf("HierarchyQueryRepository.FindByJuniors - query failed: %w", err)
	}
	defer rows.Close()

	return scanEdges(rows)
}

// AllForOwner loads the whole tenant edge set, used to assemble the forest.
func (hqr *HierarchyQueryRepository) AllForOwner(ctx context.Context, owner string) ([]entities.HierarchyEdge, error) {
	query := `SELECT ` + edgeColumns + `
			  FROM hierarchy_edges
			  WHERE owner = $1
			  ORDER BY hierarchy_level, id`

	rows, err := hqr.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("HierarchyQueryRepository.AllForOwner - query failed: %w", err)
	}
	defer rows.Close()

	return scanEdges(rows)
}

// CountForOwner bounds the ancestor walk (see HierarchyService.ancestors).
func (hqr *HierarchyQueryRepository) CountForOwner(ctx context.Context, owner string) (int, error) {
	var count int
	if err := hqr.pool.QueryRow(ctx, `SELECT COUNT(*) FROM hierarchy_edges WHERE owner = $1`, owner).Scan(&count); err != nil {
		return 0, fmt.Errorf("HierarchyQueryRepository.CountForOwner - query failed: %w", err)
	}
	return count, nil
}

func scanEdges(rows pgx.Rows) ([]entities.HierarchyEdge, error) {
	var edges []entities.HierarchyEdge
	for rows.Next() {
		var edge entities.HierarchyEdge
		err := rows.Scan(
			&edge.ID,
			&edge.Owner,
			&edge.SeniorID,
			&edge.JuniorID,
			&edge.Relation,
			&edge.HierarchyLevel,
			&edge.Path,
			&edge.RootManager,
			&edge.CreatedAt,
			&edge.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hierarchy edge: %w", err)
		}
		edges = append(edges, edge)
	}

	return edges, rows.Err()
}
