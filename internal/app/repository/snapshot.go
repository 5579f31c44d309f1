package repository

import (
	"context"

	"shopfront/internal/app/ds"
	"shopfront/internal/app/dto"

	"gorm.io/gorm"
)

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// GetCatalogSnapshot loads the whole catalog tree in storage order.
// Unavailable services and variants are included.
func (r *Repository) GetCatalogSnapshot(ctx context.Context) (*dto.CatalogSnapshot, error) {
	var categories []ds.Category
	err := r.db.WithContext(ctx).
		Preload("Subcategories", byID).
		Preload("Subcategories.Services", byID).
		Preload("Subcategories.Services.Variants", byID).
		Order("id").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	snapshot := &dto.CatalogSnapshot{Categories: make([]dto.CategoryNode, 0, len(categories))}
	for _, c := range categories {
		cat := dto.CategoryNode{
			ID:            c.ID,
			Name:          c.Name,
			ImageRef:      deref(c.ImageFilename),
			Subcategories: make([]dto.SubcategoryNode, 0, len(c.Subcategories)),
		}
		for _, s := range c.Subcategories {
			sub := dto.SubcategoryNode{
				ID:       s.ID,
				Name:     s.Name,
				Services: make([]dto.ServiceNode, 0, len(s.Services)),
			}
			for _, svc := range s.Services {
				node := dto.ServiceNode{
					ID:          svc.ID,
					Name:        svc.Name,
					Available:   svc.Available,
					Description: svc.Description,
					ImageRef:    deref(svc.ImageFilename),
					Variants:    make([]dto.VariantNode, 0, len(svc.Variants)),
				}
				for _, v := range svc.Variants {
					node.Variants = append(node.Variants, dto.VariantNode{
						ID:        v.ID,
						Name:      v.Name,
						Price:     v.Price,
						Unit:      v.Unit,
						Available: v.Available,
					})
				}
				sub.Services = append(sub.Services, node)
			}
			cat.Subcategories = append(cat.Subcategories, sub)
		}
		snapshot.Categories = append(snapshot.Categories, cat)
	}
	return snapshot, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
