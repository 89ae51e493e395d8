package test_seeder

import (
	"context"

	"orghierarchy/src/domain/entities"
)

// SelectEdgesByOwner retrieves every stored edge of a tenant, insert order.
func (ts TestSeeder) SelectEdgesByOwner(ctx context.Context, owner string) ([]entities.HierarchyEdge, error) {
	query := `SELECT id, owner, senior_id, junior_id, relation, hierarchy_level, path, root_manager, created_at, updated_at
			  FROM hierarchy_edges
			  WHERE owner = $1
			  ORDER BY id`

	rows, err := ts.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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
			return nil, err
		}
		edges = append(edges, edge)
	}

	return edges, rows.Err()
}

// CountEdges counts the stored edges for one (owner, senior, junior) pair.
func (ts TestSeeder) CountEdges(ctx context.Context, owner string, seniorID string, juniorID string) (int, error) {
	query := `SELECT COUNT(*) FROM hierarchy_edges WHERE owner = $1 AND senior_id = $2 AND junior_id = $3`

	var count int
	err := ts.pool.QueryRow(ctx, query, owner, seniorID, juniorID).Scan(&count)
	return count, err
}

// SelectEmployeesByOwner retrieves a tenant's employees, name-sorted.
func (ts TestSeeder) SelectEmployeesByOwner(ctx context.Context, owner string) ([]entities.Employee, error) {
	query := `SELECT id, owner, name, created_at, updated_at
			  FROM employees
			  WHERE owner = $1
			  ORDER BY name`

	rows, err := ts.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []entities.Employee
	for rows.Next() {
		var employee entities.Employee
		if err := rows.Scan(&employee.ID, &employee.Owner, &employee.Name, &employee.CreatedAt, &employee.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	return employees, rows.Err()
}
