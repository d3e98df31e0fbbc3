package database

import (
	"context"
	"database/sql"
	"errors"

	"camstore-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSameRow is returned when a swap names the same row twice.
var ErrSameRow = errors.New("cannot swap a row with itself")

// Ordered is a promotion table that carries a display_order column.
type Ordered interface {
	models.Banner | models.Offer
}

// ListActiveBanners returns the active banners in display order, oldest
// first on ties. Schedule bounds are not applied here.
func ListActiveBanners(ctx context.Context, db *gorm.DB) ([]models.Banner, error) {
	return listActive[models.Banner](ctx, db)
}

// ListActiveOffers is ListActiveBanners for offers.
func ListActiveOffers(ctx context.Context, db *gorm.DB) ([]models.Offer, error) {
	return listActive[models.Offer](ctx, db)
}

func listActive[T Ordered](ctx context.Context, db *gorm.DB) ([]T, error) {
	out := []T{}
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC").
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// NextDisplayOrder returns one past the highest display_order in use.
func NextDisplayOrder[T Ordered](ctx context.Context, db *gorm.DB) (int, error) {
	var max sql.NullInt64
	err := db.WithContext(ctx).Model(new(T)).Select("MAX(display_order)").Row().Scan(&max)
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}

// SwapDisplayOrder exchanges the display_order of two rows in one
// transaction. Returns gorm.ErrRecordNotFound if either row is missing.
func SwapDisplayOrder[T Ordered](ctx context.Context, db *gorm.DB, a, b uuid.UUID) error {
	if a == b {
		return ErrSameRow
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []struct {
			ID           uuid.UUID
			DisplayOrder int
		}
		if err := tx.Model(new(T)).
			Select("id, display_order").
			Where("id IN ?", []uuid.UUID{a, b}).
			Scan(&rows).Error; err != nil {
			return err
		}
		if len(rows) != 2 {
			return gorm.ErrRecordNotFound
		}

		orders := map[uuid.UUID]int{rows[0].ID: rows[0].DisplayOrder, rows[1].ID: rows[1].DisplayOrder}
		if err := tx.Model(new(T)).Where("id = ?", a).Update("display_order", orders[b]).Error; err != nil {
			return err
		}
		return tx.Model(new(T)).Where("id = ?", b).Update("display_order", orders[a]).Error
	})
}
