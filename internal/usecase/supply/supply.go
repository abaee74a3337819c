package supply

import (
	"context"

	"github.com/ghaniswara/medi-quest/internal/entity"
	statsCache "github.com/ghaniswara/medi-quest/internal/repository/stats"
	supplyRepo "github.com/ghaniswara/medi-quest/internal/repository/supply"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type ISupplyUseCase interface {
	ListSupplies(ctx context.Context) ([]entity.Supply, error)
	GetSupply(ctx context.Context, id uuid.UUID) (*entity.Supply, error)
	CreateSupply(ctx context.Context, request entity.SupplyRequest) (*entity.InsertResult, error)
	UpdateSupply(ctx context.Context, id uuid.UUID, request entity.SupplyRequest) (*entity.UpdateResult, error)
	DeleteSupply(ctx context.Context, id uuid.UUID) (*entity.DeleteResult, error)
	GetSupplyStats(ctx context.Context) ([]entity.SupplyStat, error)
}

type supplyUseCase struct {
	supplyRepo supplyRepo.ISupplyRepo
	cache      statsCache.IStatsCache
	logger     *log.Logger
}

func NewSupplyUseCase(supplyRepo supplyRepo.ISupplyRepo, cache statsCache.IStatsCache, logger *log.Logger) ISupplyUseCase {
	return &supplyUseCase{
		supplyRepo: supplyRepo,
		cache:      cache,
		logger:     logger,
	}
}

func (s *supplyUseCase) ListSupplies(ctx context.Context) ([]entity.Supply, error) {
	return s.supplyRepo.ListSupplies(ctx)
}

// GetSupply returns nil without an error for an unknown id.
func (s *supplyUseCase) GetSupply(ctx context.Context, id uuid.UUID) (*entity.Supply, error) {
	return s.supplyRepo.GetSupplyByID(ctx, id)
}

func (s *supplyUseCase) CreateSupply(ctx context.Context, request entity.SupplyRequest) (*entity.InsertResult, error) {
	result, err := s.supplyRepo.CreateSupply(ctx, &entity.Supply{
		Title:    request.Title,
		Category: request.Category,
		Amount:   request.Amount,
	})
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return result, nil
}

// UpdateSupply creates the supply when id matches nothing.
func (s *supplyUseCase) UpdateSupply(ctx context.Context, id uuid.UUID, request entity.SupplyRequest) (*entity.UpdateResult, error) {
	result, err := s.supplyRepo.UpsertSupply(ctx, id, request.Title, request.Category, request.Amount)
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return result, nil
}

func (s *supplyUseCase) DeleteSupply(ctx context.Context, id uuid.UUID) (*entity.DeleteResult, error) {
	result, err := s.supplyRepo.DeleteSupply(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.DeletedCount > 0 {
		s.invalidateStats(ctx)
	}
	return result, nil
}

// GetSupplyStats serves cached stats when present. A fill is dropped when a write
// invalidated the stats while they were being counted.
func (s *supplyUseCase) GetSupplyStats(ctx context.Context) ([]entity.SupplyStat, error) {
	generation, err := s.cache.Generation(ctx, statsCache.SupplyStatsKey)
	if err != nil {
		s.logger.Warnf("supply stats cache read: %v", err)
		return s.supplyRepo.CountByCategory(ctx)
	}

	var stats []entity.SupplyStat
	if hit, err := s.cache.Get(ctx, statsCache.SupplyStatsKey, &stats); err != nil {
		s.logger.Warnf("supply stats cache read: %v", err)
	} else if hit {
		return stats, nil
	}

	stats, err = s.supplyRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.cache.Set(ctx, statsCache.SupplyStatsKey, generation, stats); err != nil {
		s.logger.Warnf("supply stats cache write: %v", err)
	}
	return stats, nil
}

// A failed invalidation leaves stale stats until the TTL runs out; the write
// itself already succeeded.
func (s *supplyUseCase) invalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, statsCache.SupplyStatsKey); err != nil {
		s.logger.Warnf("supply stats cache invalidate: %v", err)
	}
}
