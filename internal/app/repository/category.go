package repository

import (
	"context"

	"shopfront/internal/app/ds"
)

func (r *Repository) CreateCategory(ctx context.Context, name string) (*ds.Category, error) {
	category := ds.Category{Name: name}
	if err := r.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) GetCategoryByID(ctx context.Context, id uint) (*ds.Category, error) {
	var category ds.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

func (r *Repository) UpdateCategoryName(ctx context.Context, id uint, name string) error {
	res := r.db.WithContext(ctx).Model(&ds.Category{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.ensureExists(ctx, &ds.Category{}, id)
	}
	return nil
}

func (r *Repository) SetCategoryImage(ctx context.Context, id uint, filename string) error {
	res := r.db.WithContext(ctx).Model(&ds.Category{}).Where("id = ?", id).Update("image_filename", filename)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.ensureExists(ctx, &ds.Category{}, id)
	}
	return nil
}

// DeleteCategory removes the category; subcategories, services and variants go with it.
func (r *Repository) DeleteCategory(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &ds.Category{}, id)
}

// ServiceImagesInCategory lists image filenames of every service below the category.
func (r *Repository) ServiceImagesInCategory(ctx context.Context, categoryID uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&ds.Service{}).
		Joins("JOIN subcategories ON subcategories.id = services.subcategory_id").
		Where("subcategories.category_id = ? AND services.image_filename IS NOT NULL", categoryID).
		Pluck("services.image_filename", &names).Error
	return names, err
}

// ensureExists distinguishes "no row" from "value unchanged" after an update touched nothing.
func (r *Repository) ensureExists(ctx context.Context, model interface{}, id uint) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
