package repository

import (
	"context"

	"shopfront/internal/app/ds"

	"gorm.io/gorm"
)

// CreateSubcategory inserts a subcategory under an existing category.
func (r *Repository) CreateSubcategory(ctx context.Context, categoryID uint, name string) (*ds.Subcategory, error) {
	sub := ds.Subcategory{Name: name, CategoryID: categoryID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&ds.Category{}, categoryID).Error; err != nil {
			return notFound(err)
		}
		return tx.Create(&sub).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *Repository) GetSubcategoryByID(ctx context.Context, id uint) (*ds.Subcategory, error) {
	var sub ds.Subcategory
	if err := r.db.WithContext(ctx).First(&sub, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}

func (r *Repository) UpdateSubcategoryName(ctx context.Context, id uint, name string) error {
	res := r.db.WithContext(ctx).Model(&ds.Subcategory{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.ensureExists(ctx, &ds.Subcategory{}, id)
	}
	return nil
}

func (r *Repository) DeleteSubcategory(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &ds.Subcategory{}, id)
}

// ServiceImagesInSubcategory lists image filenames of the subcategory's services.
func (r *Repository) ServiceImagesInSubcategory(ctx context.Context, subcategoryID uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&ds.Service{}).
		Where("subcategory_id = ? AND image_filename IS NOT NULL", subcategoryID).
		Pluck("image_filename", &names).Error
	return names, err
}
