package repositories

import (
	"context"
	"errors"

	"github.com/rakhshan/go-storefront/app/models"
	"gorm.io/gorm"
)

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// ProductFilter narrows and orders a product listing. All fields are
// optional and compose: Query is a name substring match, Category an exact
// match, Sort one of the Sort* constants.
type ProductFilter struct {
	Query    string
	Category string
	Sort     string
}

type ProductRepositoryImpl interface {
	Search(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) Search(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := p.db.WithContext(ctx).Model(&models.Product{})

	if filter.Query != "" {
		query = query.Where("name LIKE ?", "%"+filter.Query+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	switch filter.Sort {
	case SortPriceAsc:
		query = query.Order("price ASC")
	case SortPriceDesc:
		query = query.Order("price DESC")
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Save(product).Error
}

// Delete does not cascade. Existing cart items, order items and favorites
// keep their product_id and dangle afterwards.
func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (p *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error
	return total, err
}
