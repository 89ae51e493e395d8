package repositories

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"orghierarchy/src/domain/entities"
	"orghierarchy/src/infra/redis"
)

// CachedHierarchyRepository serve apenas o caminho de leitura do forest; a
// validação e o management chain leem direto do Postgres, porque um cache
// defasado ali comprometeria a detecção de ciclos.
type CachedHierarchyRepository struct {
	hierarchyQueryRepository *HierarchyQueryRepository
	redisClient              *redis.RedisClient
}

func NewCachedHierarchyRepository(
	hierarchyQueryRepository *HierarchyQueryRepository,
	redisClient *redis.RedisClient,
) *CachedHierarchyRepository {
	return &CachedHierarchyRepository{
		hierarchyQueryRepository: hierarchyQueryRepository,
		redisClient:              redisClient,
	}
}

func (r *CachedHierarchyRepository) AllForOwner(ctx context.Context, owner string) ([]entities.HierarchyEdge, error) {
	// Sem redis (testes, ambientes locais) vira passthrough.
	if r.redisClient == nil {
		return r.hierarchyQueryRepository.AllForOwner(ctx, owner)
	}

	cacheKey := ownerCacheKey(owner)

	cachedJSON, found, err := r.redisClient.GetKey(ctx, cacheKey)
	if err != nil {
		// Log erro de cache mas continua com PostgreSQL
		log.Printf("Cache error for key %s: %v", cacheKey, err)
	}
	if found && err == nil {
		var edges []entities.HierarchyEdge
		if err := json.Unmarshal([]byte(cachedJSON), &edges); err == nil {
			return edges, nil
		}
		log.Printf("Discarding unreadable cache entry for key %s", cacheKey)
	}

	edges, err := r.hierarchyQueryRepository.AllForOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("postgres query failed: %w", err)
	}

	go func() {
		ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		r.setInCache(ctxWithTimeout, cacheKey, edges)
	}()

	return edges, nil
}

// InvalidateOwner drops the tenant's cached edge set after any write.
func (r *CachedHierarchyRepository) InvalidateOwner(ctx context.Context, owner string) error {
	if r.redisClient == nil {
		return nil
	}
	return r.redisClient.DeleteKeys(ctx, []string{ownerCacheKey(owner)})
}

func (r *CachedHierarchyRepository) setInCache(ctx context.Context, cacheKey string, edges []entities.HierarchyEdge) {
	dataJSON, err := json.Marshal(edges)
	if err != nil {
		log.Printf("Failed to marshal cache data for key %s: %v", cacheKey, err)
		return
	}

	if err := r.redisClient.SetKey(ctx, cacheKey, string(dataJSON)); err != nil {
		log.Printf("Failed to set cache for key %s: %v", cacheKey, err)
		return
	}

	log.Printf("Cache SET for key: %s (%d edges)", cacheKey, len(edges))
}

func ownerCacheKey(owner string) string {
	hash := md5.Sum([]byte(owner))
	return fmt.Sprintf("hierarchy:forest:%x", hash)
}
