package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shoppingcart-backend/internal/model"
)

type CartRepository interface {
	GetLines(ctx context.Context, userID int64) ([]*model.CartLine, error)
	UpsertLine(ctx context.Context, line *model.CartLine) error
	DeleteLine(ctx context.Context, userID int64, lineID string) error
	ClearLines(ctx context.Context, userID int64) error
	SetSelected(ctx context.Context, userID int64, lineIDs []string, selected bool) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{db: db}
}

func (r *cartRepoImpl) GetLines(ctx context.Context, userID int64) ([]*model.CartLine, error) {
	var lines []*model.CartLine
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *cartRepoImpl) UpsertLine(ctx context.Context, line *model.CartLine) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "line_id"}},
		DoUpdates: clause.AssignmentColumns(
			[]string{"quantity", "unit_price", "selected", "updated_at"},
		),
	}).Create(line).Error
}

func (r *cartRepoImpl) DeleteLine(ctx context.Context, userID int64, lineID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND line_id = ?", userID, lineID).
		Delete(&model.CartLine{}).Error
}

func (r *cartRepoImpl) ClearLines(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartLine{}).Error
}

func (r *cartRepoImpl) SetSelected(ctx context.Context, userID int64, lineIDs []string, selected bool) error {
	if len(lineIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.CartLine{}).
		Where("user_id = ? AND line_id IN ?", userID, lineIDs).
		Update("selected", selected).Error
}
