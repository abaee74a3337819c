package donationRepo

import (
	"context"

	"github.com/ghaniswara/medi-quest/internal/entity"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type IDonationRepo interface {
	CreateDonation(ctx context.Context, donation *entity.Donation) (*entity.InsertResult, error)
	// SummarizeByCategory counts donations and sums their amounts per supply category.
	SummarizeByCategory(ctx context.Context) ([]entity.DonationStat, error)
}

type DonationRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) IDonationRepo {
	return &DonationRepo{db: db}
}

func (r *DonationRepo) CreateDonation(ctx context.Context, donation *entity.Donation) (*entity.InsertResult, error) {
	if err := r.db.WithContext(ctx).Create(donation).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "repo: CreateDonation")
	}
	return &entity.InsertResult{Acknowledged: true, InsertedID: donation.ID}, nil
}

func (r *DonationRepo) SummarizeByCategory(ctx context.Context) ([]entity.DonationStat, error) {
	stats := []entity.DonationStat{}
	err := r.db.WithContext(ctx).
		Model(&entity.Donation{}).
		Select("supply_category AS name, COUNT(*) AS count, COALESCE(SUM(supply_amount), 0) AS total").
		Group("supply_category").
		Scan(&stats).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "repo: SummarizeByCategory")
	}
	return stats, nil
}
