package repository

import (
	"context"

	"shopfront/internal/app/ds"

	"gorm.io/gorm"
)

type VariantFields struct {
	Name      string
	Price     int
	Unit      string
	Available bool
}

func (r *Repository) CreateVariant(ctx context.Context, serviceID uint, f VariantFields) (*ds.Variant, error) {
	variant := ds.Variant{
		Name:      f.Name,
		Price:     f.Price,
		Unit:      f.Unit,
		Available: f.Available,
		ServiceID: serviceID,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&ds.Service{}, serviceID).Error; err != nil {
			return notFound(err)
		}
		return tx.Create(&variant).Error
	})
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *Repository) GetVariantByID(ctx context.Context, id uint) (*ds.Variant, error) {
	var variant ds.Variant
	if err := r.db.WithContext(ctx).First(&variant, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &variant, nil
}

func (r *Repository) UpdateVariant(ctx context.Context, id uint, f VariantFields) error {
	res := r.db.WithContext(ctx).Model(&ds.Variant{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":      f.Name,
		"price":     f.Price,
		"unit":      f.Unit,
		"available": f.Available,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.ensureExists(ctx, &ds.Variant{}, id)
	}
	return nil
}

func (r *Repository) DeleteVariant(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &ds.Variant{}, id)
}
