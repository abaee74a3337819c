package donation

import (
	"context"

	"github.com/ghaniswara/medi-quest/internal/entity"
	donationRepo "github.com/ghaniswara/medi-quest/internal/repository/donation"
	statsCache "github.com/ghaniswara/medi-quest/internal/repository/stats"
	"github.com/labstack/gommon/log"
)

type IDonationUseCase interface {
	Donate(ctx context.Context, request entity.DonationRequest) (*entity.InsertResult, error)
	GetDonationStats(ctx context.Context) ([]entity.DonationStat, error)
}

type donationUseCase struct {
	donationRepo donationRepo.IDonationRepo
	cache        statsCache.IStatsCache
	logger       *log.Logger
}

func NewDonationUseCase(donationRepo donationRepo.IDonationRepo, cache statsCache.IStatsCache, logger *log.Logger) IDonationUseCase {
	return &donationUseCase{
		donationRepo: donationRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Donate stores the donation as given. The category is not checked against supplies.
func (d *donationUseCase) Donate(ctx context.Context, request entity.DonationRequest) (*entity.InsertResult, error) {
	donation := &entity.Donation{
		SupplyCategory: request.SupplyCategory,
		Details:        entity.Details(request.Details),
	}
	if request.SupplyAmount != nil {
		donation.SupplyAmount = *request.SupplyAmount
	}

	result, err := d.donationRepo.CreateDonation(ctx, donation)
	if err != nil {
		return nil, err
	}

	if err := d.cache.Invalidate(ctx, statsCache.DonationStatsKey); err != nil {
		d.logger.Warnf("donation stats cache invalidate: %v", err)
	}
	return result, nil
}

func (d *donationUseCase) GetDonationStats(ctx context.Context) ([]entity.DonationStat, error) {
	generation, err := d.cache.Generation(ctx, statsCache.DonationStatsKey)
	if err != nil {
		d.logger.Warnf("donation stats cache read: %v", err)
		return d.donationRepo.SummarizeByCategory(ctx)
	}

	var stats []entity.DonationStat
	hit, err := d.cache.Get(ctx, statsCache.DonationStatsKey, &stats)
	if err != nil {
		d.logger.Warnf("donation stats cache read: %v", err)
	}
	if hit {
		return stats, nil
	}

	stats, err = d.donationRepo.SummarizeByCategory(ctx)
	if err != nil {
		return nil, err
	}

	// skipped when a donation landed after the generation was read
	if _, err := d.cache.Set(ctx, statsCache.DonationStatsKey, generation, stats); err != nil {
		d.logger.Warnf("donation stats cache write: %v", err)
	}
	return stats, nil
}
