package repository

import (
	"context"

	"shopfront/internal/app/ds"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// SeedDemo fills an empty catalog with a small demo tree. It does nothing if any category exists.
func (r *Repository) SeedDemo(ctx context.Context) (bool, error) {
	seeded := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ds.Category{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		categories := []ds.Category{
			{Name: "Cleaning Services", ImageFilename: strPtr("clean.jpg"), Subcategories: []ds.Subcategory{
				{Name: "Home Cleaning", Services: []ds.Service{
					{
						Name:        "Basic Cleaning",
						Description: "Basic cleaning includes dusting, vacuuming, and bathroom cleaning",
						Available:   true,
						Variants: []ds.Variant{
							{Name: "1 Bedroom", Price: 1500, Unit: "per service", Available: true},
							{Name: "2 Bedroom", Price: 2500, Unit: "per service", Available: true},
						},
					},
					{
						Name:        "Deep Cleaning",
						Description: "Deep cleaning includes all basic cleaning plus kitchen deep clean",
						Available:   true,
						Variants: []ds.Variant{
							{Name: "Standard", Price: 3000, Unit: "per service", Available: true},
							{Name: "Premium", Price: 4000, Unit: "per service", Available: true},
						},
					},
				}},
				{Name: "Office Cleaning"},
			}},
			{Name: "Repair Services", ImageFilename: strPtr("repair.jpg"), Subcategories: []ds.Subcategory{
				{Name: "Appliance Repair"},
			}},
			{Name: "Beauty Services", ImageFilename: strPtr("beauty.jpg"), Subcategories: []ds.Subcategory{
				{Name: "Salon Services"},
			}},
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		logrus.Info("demo catalog seeded")
	}
	return seeded, nil
}
