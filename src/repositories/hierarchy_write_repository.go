package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"orghierarchy/src/domain"
	"orghierarchy/src/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// A derivação de hierarchy_level/path/root_manager acontece dentro do próprio
// INSERT: o LEFT JOIN LATERAL busca a aresta mais recente onde o senior aparece
// como junior e herda os metadados dela. Rodando na mesma statement, a leitura
// e a escrita enxergam o mesmo estado, mesmo com escritores concorrentes.
const insertEdgeQuery = `
	INSERT INTO hierarchy_edges (owner, senior_id, junior_id, relation, hierarchy_level, path, root_manager)
	SELECT
		$1, $2, $3, $4,
		COALESCE(reporting.hierarchy_level + 1, 1),
		COALESCE(reporting.path || '.' || $2, $2),
		COALESCE(reporting.root_manager, $2)
	FROM (SELECT 1) AS seed
	LEFT JOIN LATERAL (
		SELECT hierarchy_level, path, root_manager
		FROM hierarchy_edges
		WHERE owner = $1 AND junior_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	) AS reporting ON TRUE
	RETURNING ` + edgeColumns

type HierarchyWriteRepository struct {
	writePool                 *pgxpool.Pool
	cachedHierarchyRepository *CachedHierarchyRepository
}

func NewHierarchyWriteRepository(writePool *pgxpool.Pool, cachedHierarchyRepository *CachedHierarchyRepository) *HierarchyWriteRepository {
	return &HierarchyWriteRepository{writePool: writePool, cachedHierarchyRepository: cachedHierarchyRepository}
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Insert persists one validated edge, deriving its ancestry metadata in the
// same statement. The (owner, senior_id, junior_id) unique constraint is the
// backstop against check-then-act races; its violation surfaces as the
// duplicate domain error.
func (hwr *HierarchyWriteRepository) Insert(ctx context.Context, owner string, link domain.RelationshipInput) (entities.HierarchyEdge, error) {
	edge, err := insertEdge(ctx, hwr.writePool, owner, link)
	if err != nil {
		return entities.HierarchyEdge{}, err
	}

	hwr.invalidateInBackground(owner)
	return edge, nil
}

// BulkInsert persists a pre-validated batch inside one transaction. Inserts
// run in order, so the lateral derivation of a later candidate sees the rows
// of earlier candidates in the same batch. Any failure rolls the whole batch
// back; zero edges are committed.
func (hwr *HierarchyWriteRepository) BulkInsert(ctx context.Context, owner string, links []domain.RelationshipInput) ([]entities.HierarchyEdge, error) {
	if len(links) == 0 {
		return nil, nil
	}

	tx, err := hwr.writePool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("HierarchyWriteRepository.BulkInsert - failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	created := make([]entities.HierarchyEdge, 0, len(links))
	for i, link := range links {
		edge, err := insertEdge(ctx, tx, owner, link)
		if err != nil {
			return nil, fmt.Errorf("HierarchyWriteRepository.BulkInsert - candidate %d (%s -> %s) failed, batch rolled back, 0 of %d committed: %w",
				i, link.SeniorID, link.JuniorID, len(links), err)
		}
		created = append(created, edge)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("HierarchyWriteRepository.BulkInsert - commit failed, 0 of %d committed: %w", len(links), err)
	}

	hwr.invalidateInBackground(owner)
	return created, nil
}

func insertEdge(ctx context.Context, q rowQuerier, owner string, link domain.RelationshipInput) (entities.HierarchyEdge, error) {
	var edge entities.HierarchyEdge
	err := q.QueryRow(ctx, insertEdgeQuery, owner, link.SeniorID, link.JuniorID, link.Relation).Scan(
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
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation on (owner, senior_id, junior_id)
				return entities.HierarchyEdge{}, domain.ErrDuplicateRelationship
			case "23514": // check_violation on senior_id <> junior_id
				return entities.HierarchyEdge{}, domain.ErrSelfRelationship
			}
		}
		return entities.HierarchyEdge{}, fmt.Errorf("failed to insert hierarchy edge: %w", err)
	}

	return edge, nil
}

func (hwr *HierarchyWriteRepository) invalidateInBackground(owner string) {
	if hwr.cachedHierarchyRepository == nil {
		return
	}

	go func() {
		if err := hwr.cachedHierarchyRepository.InvalidateOwner(context.Background(), owner); err != nil {
			log.Printf("Failed to invalidate hierarchy cache for owner %s: %v", owner, err)
		}
	}()
}
