package repository

import (
	"context"
	"errors"

	"shopfront/internal/app/ds"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetShopStatus returns the singleton row, creating an open shop on first access.
func (r *Repository) GetShopStatus(ctx context.Context) (*ds.ShopStatus, error) {
	var status ds.ShopStatus
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return firstOrCreateStatus(tx, &status)
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// ToggleShopStatus flips the open flag and returns the new state.
func (r *Repository) ToggleShopStatus(ctx context.Context) (*ds.ShopStatus, error) {
	var status ds.ShopStatus
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := firstOrCreateStatus(tx, &status); err != nil {
			return err
		}
		status.IsOpen = !status.IsOpen
		return tx.Model(&status).Update("is_open", status.IsOpen).Error
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *Repository) UpdateClosedMessage(ctx context.Context, message string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var status ds.ShopStatus
		if err := firstOrCreateStatus(tx, &status); err != nil {
			return err
		}
		return tx.Model(&status).Update("message", message).Error
	})
}

// firstOrCreateStatus loads the row under the fixed id, inserting the open default when it is
// missing. A concurrent insert of the same id is absorbed by the conflict clause.
func firstOrCreateStatus(tx *gorm.DB, status *ds.ShopStatus) error {
	err := tx.First(status, ds.ShopStatusID).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	err = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ds.ShopStatus{
		ID:      ds.ShopStatusID,
		IsOpen:  true,
		Message: ds.DefaultClosedMessage,
	}).Error
	if err != nil {
		return err
	}
	return tx.First(status, ds.ShopStatusID).Error
}
