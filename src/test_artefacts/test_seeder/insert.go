package test_seeder

import (
	"context"
	"fmt"

	"orghierarchy/src/domain/entities"
)

// InsertEmployee inserts an employee into the database for testing
func (ts TestSeeder) InsertEmployee(ctx context.Context, employee *entities.Employee) {
	query := `
		INSERT INTO employees (owner, id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := ts.pool.Exec(ctx, query,
		employee.Owner,
		employee.ID,
		employee.Name,
		employee.CreatedAt,
		employee.UpdatedAt,
	)
	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertEmployee failed: %v", err))
	}
}

// InsertEdge inserts a hierarchy edge with its metadata as given, bypassing
// the derivation path. Useful to arrange exotic store states.
func (ts TestSeeder) InsertEdge(ctx context.Context, edge *entities.HierarchyEdge) {
	query := `
		INSERT INTO hierarchy_edges (owner, senior_id, junior_id, relation, hierarchy_level, path, root_manager, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	err := ts.pool.QueryRow(ctx, query,
		edge.Owner,
		edge.SeniorID,
		edge.JuniorID,
		edge.Relation,
		edge.HierarchyLevel,
		edge.Path,
		edge.RootManager,
		edge.CreatedAt,
		edge.UpdatedAt,
	).Scan(&edge.ID)
	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertEdge failed: %v", err))
	}
}
