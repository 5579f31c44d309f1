package repository

import (
	"context"
	"testing"

	"shopfront/internal/app/ds"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo, err := FromDB(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

type tree struct {
	category    *ds.Category
	subcategory *ds.Subcategory
	service     *ds.Service
	variant     *ds.Variant
}

func buildTree(t *testing.T, repo *Repository, name string) tree {
	t.Helper()
	ctx := context.Background()

	category, err := repo.CreateCategory(ctx, name)
	require.NoError(t, err)
	sub, err := repo.CreateSubcategory(ctx, category.ID, name+" sub")
	require.NoError(t, err)
	service, err := repo.CreateService(ctx, sub.ID, ServiceFields{Name: name + " service", Available: true})
	require.NoError(t, err)
	variant, err := repo.CreateVariant(ctx, service.ID, VariantFields{Name: "Standard", Price: 1500, Unit: "per service", Available: true})
	require.NoError(t, err)

	return tree{category: category, subcategory: sub, service: service, variant: variant}
}

func TestCreateChildRequiresParent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.CreateSubcategory(ctx, 42, "Orphan")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.CreateService(ctx, 42, ServiceFields{Name: "Orphan"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.CreateVariant(ctx, 42, VariantFields{Name: "Orphan"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCategoryCascades(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	doomed := buildTree(t, repo, "Cleaning")
	kept := buildTree(t, repo, "Repair")

	require.NoError(t, repo.DeleteCategory(ctx, doomed.category.ID))

	_, err := repo.GetSubcategoryByID(ctx, doomed.subcategory.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetServiceByID(ctx, doomed.service.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetVariantByID(ctx, doomed.variant.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetVariantByID(ctx, kept.variant.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, repo.DeleteCategory(ctx, doomed.category.ID), ErrNotFound)
}

func TestDeleteServiceRemovesVariants(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	tr := buildTree(t, repo, "Cleaning")
	require.NoError(t, repo.DeleteService(ctx, tr.service.ID))

	_, err := repo.GetVariantByID(ctx, tr.variant.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetSubcategoryByID(ctx, tr.subcategory.ID)
	assert.NoError(t, err)
}

func TestUpdateMissingRows(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	assert.ErrorIs(t, repo.UpdateCategoryName(ctx, 7, "x"), ErrNotFound)
	assert.ErrorIs(t, repo.UpdateSubcategoryName(ctx, 7, "x"), ErrNotFound)
	assert.ErrorIs(t, repo.UpdateService(ctx, 7, ServiceFields{Name: "x"}), ErrNotFound)
	assert.ErrorIs(t, repo.UpdateVariant(ctx, 7, VariantFields{Name: "x"}), ErrNotFound)
	assert.ErrorIs(t, repo.SetServiceImage(ctx, 7, "service_7.jpg"), ErrNotFound)
}

func TestUpdateWithSameValueIsNotAnError(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	tr := buildTree(t, repo, "Cleaning")
	assert.NoError(t, repo.UpdateCategoryName(ctx, tr.category.ID, "Cleaning"))
}

func TestUpdateVariantStoresFalse(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	tr := buildTree(t, repo, "Cleaning")
	require.NoError(t, repo.UpdateVariant(ctx, tr.variant.ID, VariantFields{
		Name:      "Premium",
		Price:     0,
		Unit:      "per hour",
		Available: false,
	}))

	got, err := repo.GetVariantByID(ctx, tr.variant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Premium", got.Name)
	assert.Equal(t, 0, got.Price)
	assert.Equal(t, "per hour", got.Unit)
	assert.False(t, got.Available)
}

func TestShopStatusLifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	status, err := repo.GetShopStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.IsOpen)
	assert.Equal(t, ds.DefaultClosedMessage, status.Message)

	toggled, err := repo.ToggleShopStatus(ctx)
	require.NoError(t, err)
	assert.False(t, toggled.IsOpen)

	toggled, err = repo.ToggleShopStatus(ctx)
	require.NoError(t, err)
	assert.True(t, toggled.IsOpen)

	require.NoError(t, repo.UpdateClosedMessage(ctx, "Back at 9"))
	status, err = repo.GetShopStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Back at 9", status.Message)
	assert.True(t, status.IsOpen)

	var count int64
	require.NoError(t, repo.db.Model(&ds.ShopStatus{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestShopStatusUsesFixedRow(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	status, err := repo.GetShopStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, ds.ShopStatusID, status.ID)

	// a second insert under the same key is rejected by the engine
	err = repo.db.Create(&ds.ShopStatus{ID: ds.ShopStatusID, IsOpen: false, Message: "dup"}).Error
	assert.Error(t, err)

	// the create path tolerates a row written by a concurrent request
	require.NoError(t, repo.db.Transaction(func(tx *gorm.DB) error {
		require.NoError(t, tx.Model(&ds.ShopStatus{}).Where("id = ?", ds.ShopStatusID).Update("message", "Existing").Error)
		var got ds.ShopStatus
		if err := firstOrCreateStatus(tx, &got); err != nil {
			return err
		}
		assert.Equal(t, "Existing", got.Message)
		return nil
	}))

	var count int64
	require.NoError(t, repo.db.Model(&ds.ShopStatus{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestShopStatusCreateIgnoresConflict(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.db.Create(&ds.ShopStatus{ID: ds.ShopStatusID, IsOpen: false, Message: "Closed"}).Error)

	err := repo.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ds.ShopStatus{
		ID:      ds.ShopStatusID,
		IsOpen:  true,
		Message: ds.DefaultClosedMessage,
	}).Error
	require.NoError(t, err)

	status, err := repo.GetShopStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.IsOpen)
	assert.Equal(t, "Closed", status.Message)
}

func TestToggleCreatesStatusFirst(t *testing.T) {
	repo := newTestRepository(t)

	status, err := repo.ToggleShopStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.IsOpen)
}

func TestCatalogSnapshot(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := buildTree(t, repo, "Cleaning")
	second := buildTree(t, repo, "Repair")

	hidden, err := repo.CreateService(ctx, first.subcategory.ID, ServiceFields{Name: "Hidden", Available: false})
	require.NoError(t, err)
	require.NoError(t, repo.SetServiceImage(ctx, hidden.ID, "service_3.jpg"))

	snapshot, err := repo.GetCatalogSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Categories, 2)

	assert.Equal(t, first.category.ID, snapshot.Categories[0].ID)
	assert.Equal(t, second.category.ID, snapshot.Categories[1].ID)
	assert.Empty(t, snapshot.Categories[0].ImageRef)

	services := snapshot.Categories[0].Subcategories[0].Services
	require.Len(t, services, 2)
	assert.Equal(t, "Cleaning service", services[0].Name)
	assert.True(t, services[0].Available)
	assert.Equal(t, "Hidden", services[1].Name)
	assert.False(t, services[1].Available)
	assert.Equal(t, "service_3.jpg", services[1].ImageRef)
	assert.Empty(t, services[1].Variants)

	require.Len(t, services[0].Variants, 1)
	assert.Equal(t, 1500, services[0].Variants[0].Price)
}

func TestServiceImages(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	tr := buildTree(t, repo, "Cleaning")
	_, err := repo.CreateService(ctx, tr.subcategory.ID, ServiceFields{Name: "No picture"})
	require.NoError(t, err)
	require.NoError(t, repo.SetServiceImage(ctx, tr.service.ID, "service_1.jpg"))

	names, err := repo.ServiceImagesInCategory(ctx, tr.category.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"service_1.jpg"}, names)

	names, err = repo.ServiceImagesInSubcategory(ctx, tr.subcategory.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"service_1.jpg"}, names)
}

func TestSeedDemoRunsOnce(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	inserted, err := repo.SeedDemo(ctx)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.SeedDemo(ctx)
	require.NoError(t, err)
	assert.False(t, inserted)

	snapshot, err := repo.GetCatalogSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Categories, 3)
	assert.Equal(t, "Cleaning Services", snapshot.Categories[0].Name)
	assert.Equal(t, "clean.jpg", snapshot.Categories[0].ImageRef)
}
