package supplyRepo

import (
	"context"
	"errors"

	"github.com/ghaniswara/medi-quest/internal/entity"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type ISupplyRepo interface {
	ListSupplies(ctx context.Context) ([]entity.Supply, error)
	// GetSupplyByID returns nil, nil when the id is unknown.
	GetSupplyByID(ctx context.Context, id uuid.UUID) (*entity.Supply, error)
	CreateSupply(ctx context.Context, supply *entity.Supply) (*entity.InsertResult, error)
	// UpsertSupply sets title, category and amount on id, creating the row when
	// nothing matched.
	UpsertSupply(ctx context.Context, id uuid.UUID, title, category string, amount float64) (*entity.UpdateResult, error)
	DeleteSupply(ctx context.Context, id uuid.UUID) (*entity.DeleteResult, error)
	CountByCategory(ctx context.Context) ([]entity.SupplyStat, error)
}

type SupplyRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) ISupplyRepo {
	return &SupplyRepo{db: db}
}

func (r *SupplyRepo) ListSupplies(ctx context.Context) ([]entity.Supply, error) {
	supplies := []entity.Supply{}
	if err := r.db.WithContext(ctx).Find(&supplies).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "repo: ListSupplies")
	}
	return supplies, nil
}

func (r *SupplyRepo) GetSupplyByID(ctx context.Context, id uuid.UUID) (*entity.Supply, error) {
	var supply entity.Supply
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&supply).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "repo: GetSupplyByID")
	}
	return &supply, nil
}

func (r *SupplyRepo) CreateSupply(ctx context.Context, supply *entity.Supply) (*entity.InsertResult, error) {
	if err := r.db.WithContext(ctx).Create(supply).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "repo: CreateSupply")
	}
	return &entity.InsertResult{Acknowledged: true, InsertedID: supply.ID}, nil
}

func (r *SupplyRepo) UpsertSupply(ctx context.Context, id uuid.UUID, title, category string, amount float64) (*entity.UpdateResult, error) {
	result := &entity.UpdateResult{Acknowledged: true}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updated := tx.Model(&entity.Supply{}).Where("id = ?", id).Updates(map[string]interface{}{
			"title":    title,
			"category": category,
			"amount":   amount,
		})
		if updated.Error != nil {
			return updated.Error
		}
		if updated.RowsAffected > 0 {
			result.MatchedCount = updated.RowsAffected
			result.ModifiedCount = updated.RowsAffected
			return nil
		}

		supply := entity.Supply{ID: id, Title: title, Category: category, Amount: amount}
		if err := tx.Create(&supply).Error; err != nil {
			return err
		}
		result.UpsertedCount = 1
		result.UpsertedID = &supply.ID
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "repo: UpsertSupply")
	}
	return result, nil
}

func (r *SupplyRepo) DeleteSupply(ctx context.Context, id uuid.UUID) (*entity.DeleteResult, error) {
	deleted := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Supply{})
	if deleted.Error != nil {
		return nil, pkgerrors.Wrap(deleted.Error, "repo: DeleteSupply")
	}
	return &entity.DeleteResult{Acknowledged: true, DeletedCount: deleted.RowsAffected}, nil
}

func (r *SupplyRepo) CountByCategory(ctx context.Context) ([]entity.SupplyStat, error) {
	stats := []entity.SupplyStat{}
	err := r.db.WithContext(ctx).
		Model(&entity.Supply{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&stats).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "repo: CountByCategory")
	}
	return stats, nil
}
