package repository

import (
	"context"

	"shopfront/internal/app/ds"

	"gorm.io/gorm"
)

// ServiceFields are the editable columns of a service.
type ServiceFields struct {
	Name        string
	Description string
	Available   bool
}

func (r *Repository) CreateService(ctx context.Context, subcategoryID uint, f ServiceFields) (*ds.Service, error) {
	service := ds.Service{
		Name:          f.Name,
		Description:   f.Description,
		Available:     f.Available,
		SubcategoryID: subcategoryID,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&ds.Subcategory{}, subcategoryID).Error; err != nil {
			return notFound(err)
		}
		return tx.Create(&service).Error
	})
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *Repository) GetServiceByID(ctx context.Context, id uint) (*ds.Service, error) {
	var service ds.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &service, nil
}

func (r *Repository) UpdateService(ctx context.Context, id uint, f ServiceFields) error {
	res := r.db.WithContext(ctx).Model(&ds.Service{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        f.Name,
		"description": f.Description,
		"available":   f.Available,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.ensureExists(ctx, &ds.Service{}, id)
	}
	return nil
}

func (r *Repository) SetServiceImage(ctx context.Context, id uint, filename string) error {
	res := r.db.WithContext(ctx).Model(&ds.Service{}).Where("id = ?", id).Update("image_filename", filename)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.ensureExists(ctx, &ds.Service{}, id)
	}
	return nil
}

func (r *Repository) DeleteService(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &ds.Service{}, id)
}
