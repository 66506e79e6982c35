package main

import (
	"testing"

	"github.com/harikrishnagadicharla/unicart/internal/cart"
	"github.com/harikrishnagadicharla/unicart/internal/products"
	"github.com/harikrishnagadicharla/unicart/internal/wishlist"
	"github.com/harikrishnagadicharla/unicart/pkg/db/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Builds the domain services the way main does, so the assembly stays in
// lockstep with the service constructors.
func TestDomainServiceAssembly(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Product{}, &models.ProductImage{}, &models.Review{},
		&models.CartItem{}, &models.WishlistItem{},
	))

	productRepo := products.NewRepository(conn)
	cartRepo := cart.NewRepository(conn)
	wishlistRepo := wishlist.NewRepository(conn)

	_, err = products.NewService(products.ServiceParams{Repo: productRepo})
	require.NoError(t, err)

	_, err = cart.NewService(cart.ServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
	})
	require.NoError(t, err)

	_, err = wishlist.NewService(wishlist.ServiceParams{
		WishlistRepo: wishlistRepo,
		ProductRepo:  productRepo,
	})
	require.NoError(t, err)
}
