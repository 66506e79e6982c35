package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/harikrishnagadicharla/unicart/pkg/db/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Product{},
		&models.ProductImage{},
		&models.Review{},
	))
	return conn
}

func insertProduct(t *testing.T, conn *gorm.DB, name string, priceCents int64, active, featured bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       name,
		Slug:       name + "-" + uuid.NewString(),
		PriceCents: priceCents,
		IsActive:   active,
		IsFeatured: featured,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestRepositoryListFiltersInactive(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	insertProduct(t, conn, "visible", 1000, true, false)
	insertProduct(t, conn, "hidden", 1000, false, false)

	rows, total, err := repo.List(ctx, ListParams{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	require.Equal(t, "visible", rows[0].Name)
}

func TestRepositoryListSearchAndFeatured(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	insertProduct(t, conn, "espresso machine", 19900, true, true)
	insertProduct(t, conn, "espresso cups", 2900, true, false)
	insertProduct(t, conn, "tea kettle", 4900, true, false)

	rows, total, err := repo.List(ctx, ListParams{Search: "espresso"})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, rows, 2)

	featured := true
	rows, total, err = repo.List(ctx, ListParams{Featured: &featured})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "espresso machine", rows[0].Name)
}

func TestRepositoryFindActiveByID(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	active := insertProduct(t, conn, "active", 1000, true, false)
	inactive := insertProduct(t, conn, "inactive", 1000, false, false)

	found, err := repo.FindActiveByID(ctx, active.ID)
	require.NoError(t, err)
	require.Equal(t, active.ID, found.ID)

	_, err = repo.FindActiveByID(ctx, inactive.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// the plain lookup still sees withdrawn products
	found, err = repo.FindByID(ctx, inactive.ID)
	require.NoError(t, err)
	require.Equal(t, inactive.ID, found.ID)
}

func TestRepositoryRatingSummariesRoundsToTenth(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	rated := insertProduct(t, conn, "rated", 1000, true, false)
	unrated := insertProduct(t, conn, "unrated", 1000, true, false)

	for _, rating := range []int{4, 5, 5} {
		require.NoError(t, conn.Create(&models.Review{
			ProductID: rated.ID,
			UserID:    uuid.New(),
			Rating:    rating,
		}).Error)
	}

	summaries, err := repo.RatingSummaries(ctx, []uuid.UUID{rated.ID, unrated.ID})
	require.NoError(t, err)

	summary, ok := summaries[rated.ID]
	require.True(t, ok)
	require.Equal(t, 4.7, summary.Average)
	require.Equal(t, 3, summary.Count)

	_, ok = summaries[unrated.ID]
	require.False(t, ok, "products without reviews are absent")
}

func TestRepositoryListPreloadsOrderedImages(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := insertProduct(t, conn, "pictured", 1000, true, false)
	for _, position := range []int{2, 0, 1} {
		require.NoError(t, conn.Create(&models.ProductImage{
			ProductID: product.ID,
			URL:       uuid.NewString(),
			Position:  position,
		}).Error)
	}

	rows, _, err := repo.List(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Images, 3)
	for i, img := range rows[0].Images {
		require.Equal(t, i, img.Position)
	}
}
