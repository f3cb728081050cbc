package repo

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, fmt.Errorf("product %d: %w", id, notFound(err))
	}
	return &p, nil
}

// SeedProducts inserts products when the table is empty and reports how many
// rows were written.
func (r *GormRepo) SeedProducts(ctx context.Context, products []models.Product) (int, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, err
	}
	if total > 0 || len(products) == 0 {
		return 0, nil
	}
	if err := r.DB.WithContext(ctx).Create(&products).Error; err != nil {
		return 0, fmt.Errorf("seed products: %w", err)
	}
	return len(products), nil
}
