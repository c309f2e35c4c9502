package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ProductChanges carries the columns written by a full update.
type ProductChanges struct {
	Name        string
	Category    string
	SKU         string
	Price       float64
	Quantity    int
	Description string
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) List(ctx context.Context, filters ProductFilters) ([]Product, error) {
	q := BuildListQuery(filters)

	products := []Product{}
	if err := r.db.WithContext(ctx).Raw(q.SQL, q.Args...).Scan(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id uint) (*Product, error) {
	return findByID(r.db.WithContext(ctx), id)
}

// ListCategories returns the distinct category values in alphabetical order.
func (r *ProductsRepository) ListCategories(ctx context.Context) ([]string, error) {
	categories := []string{}
	if err := r.db.WithContext(ctx).
		Model(&Product{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create inserts product and fills in its ID and CreatedAt.
func (r *ProductsRepository) Create(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSKU
		}
		return err
	}
	return nil
}

func (r *ProductsRepository) UpdateQuantity(ctx context.Context, id uint, quantity int) (*Product, error) {
	var product *Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Product{}).Where("id = ?", id).Update("quantity", quantity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}

		var err error
		product, err = findByID(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductsRepository) Update(ctx context.Context, id uint, changes ProductChanges) (*Product, error) {
	values := map[string]any{
		"name":        changes.Name,
		"category":    changes.Category,
		"sku":         changes.SKU,
		"price":       changes.Price,
		"quantity":    changes.Quantity,
		"description": changes.Description,
	}

	var product *Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Product{}).Where("id = ?", id).Updates(values)
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				return ErrDuplicateSKU
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}

		var err error
		product, err = findByID(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductsRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Count returns the number of stored products.
func (r *ProductsRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Product{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func findByID(db *gorm.DB, id uint) (*Product, error) {
	var product Product
	if err := db.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}
