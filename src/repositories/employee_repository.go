package repositories

import (
	"context"
	"fmt"

	"orghierarchy/src/domain"
	"orghierarchy/src/domain/entities"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EmployeeRepository is the graph engine's view of the employee-management
// collaborator: existence checks, display names, and the upsert fed by the
// sync consumer. The graph API itself never writes here.
type EmployeeRepository struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// ExistingIDs returns the subset of ids that exist for the tenant.
func (er *EmployeeRepository) ExistingIDs(ctx context.Context, owner string, ids []string) (map[string]bool, error) {
	if len(ids) == 0 {
		return map[string]bool{}, nil
	}

	query := `SELECT id FROM employees WHERE owner = $1 AND id = ANY($2)`

	rows, err := er.pool.Query(ctx, query, owner, ids)
	if err != nil {
		return nil, fmt.Errorf("EmployeeRepository.ExistingIDs - query failed: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]bool, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("EmployeeRepository.ExistingIDs - scan failed: %w", err)
		}
		existing[id] = true
	}

	return existing, rows.Err()
}

// NamesByIDs resolves display names for forest labeling. Ids without a stored
// employee are simply absent from the map.
func (er *EmployeeRepository) NamesByIDs(ctx context.Context, owner string, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	query := `SELECT id, name FROM employees WHERE owner = $1 AND id = ANY($2)`

	rows, err := er.pool.Query(ctx, query, owner, ids)
	if err != nil {
		return nil, fmt.Errorf("EmployeeRepository.NamesByIDs - query failed: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string, len(ids))
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("EmployeeRepository.NamesByIDs - scan failed: %w", err)
		}
		names[id] = name
	}

	return names, rows.Err()
}

// Upsert stores or refreshes employee records coming from the collaborator.
func (er *EmployeeRepository) Upsert(ctx context.Context, owner string, employees []domain.EmployeeInput) error {
	if len(employees) == 0 {
		return nil
	}

	tx, err := er.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("EmployeeRepository.Upsert - failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO employees (owner, id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner, id) DO UPDATE SET
			name = excluded.name,
			updated_at = NOW()
		WHERE employees.name IS DISTINCT FROM excluded.name`

	for _, employee := range employees {
		if _, err := tx.Exec(ctx, query, owner, employee.ID, employee.Name); err != nil {
			return fmt.Errorf("EmployeeRepository.Upsert - upsert of %s failed: %w", employee.ID, err)
		}
	}

	return tx.Commit(ctx)
}

// FindByOwner lists the tenant's employees, name-sorted.
func (er *EmployeeRepository) FindByOwner(ctx context.Context, owner string) ([]entities.Employee, error) {
	query := `SELECT id, owner, name, created_at, updated_at
			  FROM employees
			  WHERE owner = $1
			  ORDER BY name`

	rows, err := er.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("EmployeeRepository.FindByOwner - query failed: %w", err)
	}
	defer rows.Close()

	var employees []entities.Employee
	for rows.Next() {
		var employee entities.Employee
		if err := rows.Scan(&employee.ID, &employee.Owner, &employee.Name, &employee.CreatedAt, &employee.UpdatedAt); err != nil {
			return nil, fmt.Errorf("EmployeeRepository.FindByOwner - scan failed: %w", err)
		}
		employees = append(employees, employee)
	}

	return employees, rows.Err()
}
