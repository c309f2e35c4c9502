package products

import (
	"context"
	"errors"
	"strings"

	"github.com/goldenhive/inventory/models"
)

// ProductStore is the persistence the service needs. *models.ProductsRepository
// satisfies it.
type ProductStore interface {
	List(ctx context.Context, filters models.ProductFilters) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, product *models.Product) error
	UpdateQuantity(ctx context.Context, id uint, quantity int) (*models.Product, error)
	Update(ctx context.Context, id uint, changes models.ProductChanges) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
}

// MutationRecorder observes the outcome of every write operation.
type MutationRecorder interface {
	ObserveMutation(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveMutation(string, string) {}

// ProductInput is the body of POST /api/products and PUT /api/products/{id}.
type ProductInput struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	SKU         string  `json:"sku"`
	Price       Number  `json:"price"`
	Quantity    Number  `json:"quantity"`
	Description *string `json:"description"`
}

// QuantityInput is the body of PATCH /api/products/{id}/quantity.
type QuantityInput struct {
	Quantity Number `json:"quantity"`
}

type Service struct {
	repo     ProductStore
	recorder MutationRecorder
}

type ServiceOption func(*Service)

// WithRecorder reports create/update/delete outcomes to r.
func WithRecorder(r MutationRecorder) ServiceOption {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

func NewService(repo ProductStore, opts ...ServiceOption) *Service {
	s := &Service{
		repo:     repo,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) List(ctx context.Context, search, category string) ([]models.Product, error) {
	products, err := s.repo.List(ctx, models.ProductFilters{Search: search, Category: category})
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return product, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (s *Service) Create(ctx context.Context, in ProductInput) (product *models.Product, err error) {
	defer func() { s.recorder.ObserveMutation("create", outcome(err)) }()

	fields, err := validateFields(in)
	if err != nil {
		return nil, err
	}

	// Unparsable or missing quantity falls back to zero on create.
	quantity := 0
	if q, ok := in.Quantity.Int(); ok {
		if q < 0 {
			return nil, invalid(msgInvalidQuantity)
		}
		quantity = q
	}

	product = &models.Product{
		Name:        fields.Name,
		Category:    fields.Category,
		SKU:         fields.SKU,
		Price:       fields.Price,
		Quantity:    quantity,
		Description: fields.Description,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, translate(err)
	}
	return product, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, id uint, in QuantityInput) (product *models.Product, err error) {
	defer func() { s.recorder.ObserveMutation("update_quantity", outcome(err)) }()

	quantity, ok := in.Quantity.Int()
	if !ok || quantity < 0 {
		return nil, invalid(msgInvalidQuantity)
	}

	product, err = s.repo.UpdateQuantity(ctx, id, quantity)
	if err != nil {
		return nil, translate(err)
	}
	return product, nil
}

// Update replaces every editable column of the product. A missing quantity
// is written as zero, like on create; a present but invalid one is rejected.
func (s *Service) Update(ctx context.Context, id uint, in ProductInput) (product *models.Product, err error) {
	defer func() { s.recorder.ObserveMutation("update", outcome(err)) }()

	changes, err := validateFields(in)
	if err != nil {
		return nil, err
	}

	if in.Quantity.Present() {
		q, ok := in.Quantity.Int()
		if !ok || q < 0 {
			return nil, invalid(msgInvalidQuantity)
		}
		changes.Quantity = q
	}

	product, err = s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, translate(err)
	}
	return product, nil
}

func (s *Service) Delete(ctx context.Context, id uint) (err error) {
	defer func() { s.recorder.ObserveMutation("delete", outcome(err)) }()

	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err)
	}
	return nil
}

// validateFields checks the columns shared by create and full update.
func validateFields(in ProductInput) (models.ProductChanges, error) {
	changes := models.ProductChanges{
		Name:     strings.TrimSpace(in.Name),
		Category: strings.TrimSpace(in.Category),
		SKU:      strings.TrimSpace(in.SKU),
	}
	if changes.Name == "" || changes.Category == "" || changes.SKU == "" || !in.Price.Present() {
		return changes, invalid(msgRequiredFields)
	}

	price, ok := in.Price.Float()
	if !ok || price < 0 {
		return changes, invalid(msgInvalidPrice)
	}
	changes.Price = price

	if in.Description != nil {
		changes.Description = *in.Description
	}
	return changes, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		return ErrNotFound
	case errors.Is(err, models.ErrDuplicateSKU):
		return ErrConflict
	default:
		return err
	}
}
