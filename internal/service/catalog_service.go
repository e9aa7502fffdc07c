package service

import (
	"context"
	"strings"

	"foodcart-service/internal/models"
	"foodcart-service/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductInput struct {
	Name          string
	CategoryID    *uuid.UUID
	Price         decimal.Decimal
	Image         string
	SpecialStatus bool
	Description   string
}

type CatalogService interface {
	CreateCategory(ctx context.Context, name string) (*models.ProductCategory, error)
	CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error)
	// GetOrCreateProduct matches by name; the category, if named, is get-or-created too.
	GetOrCreateProduct(ctx context.Context, in ProductInput, category string) (p *models.Product, created bool, err error)
	UpdateProductPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*models.Product, error)
	ListAvailableProducts(ctx context.Context) ([]models.Product, error)
	RestaurantsCoveringProducts(ctx context.Context, productIDs []uuid.UUID) ([]models.Restaurant, error)
}

type catalogService struct {
	store Store
	log   *zap.Logger
}

func NewCatalogService(store Store, log *zap.Logger) CatalogService {
	return &catalogService{store: store, log: log}
}

func (s *catalogService) CreateCategory(ctx context.Context, name string) (*models.ProductCategory, error) {
	name, err := required("name", name)
	if err != nil {
		return nil, err
	}
	c := &models.ProductCategory{Name: name}
	if err := s.store.Repos().Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func validateProduct(in ProductInput) (ProductInput, error) {
	var err error
	if in.Name, err = required("name", in.Name); err != nil {
		return in, err
	}
	if err := checkPrice(in.Price); err != nil {
		return in, err
	}
	in.Image = strings.TrimSpace(in.Image)
	in.Description = strings.TrimSpace(in.Description)
	return in, nil
}

func createProduct(ctx context.Context, tx *repository.Repository, in ProductInput) (*models.Product, error) {
	if in.CategoryID != nil {
		c, err := tx.Categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, ErrCategoryNotFound
		}
	}
	p := &models.Product{
		Name:          in.Name,
		CategoryID:    in.CategoryID,
		Price:         in.Price,
		Image:         in.Image,
		SpecialStatus: in.SpecialStatus,
		Description:   in.Description,
	}
	if err := tx.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	in, err := validateProduct(in)
	if err != nil {
		return nil, err
	}
	var out *models.Product
	err = s.store.WithTx(ctx, func(tx *repository.Repository) error {
		p, err := createProduct(ctx, tx, in)
		out = p
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *catalogService) GetOrCreateProduct(ctx context.Context, in ProductInput, category string) (*models.Product, bool, error) {
	in, err := validateProduct(in)
	if err != nil {
		return nil, false, err
	}

	var (
		out     *models.Product
		created bool
	)
	err = s.store.WithTx(ctx, func(tx *repository.Repository) error {
		existing, err := tx.Products.GetByName(ctx, in.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			out = existing
			return nil
		}

		if category = strings.TrimSpace(category); category != "" {
			c, err := tx.Categories.GetByName(ctx, category)
			if err != nil {
				return err
			}
			if c == nil {
				c = &models.ProductCategory{Name: category}
				if err := tx.Categories.Create(ctx, c); err != nil {
					return err
				}
			}
			in.CategoryID = &c.ID
		}

		out, err = createProduct(ctx, tx, in)
		created = err == nil
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

func (s *catalogService) UpdateProductPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*models.Product, error) {
	if err := checkPrice(price); err != nil {
		return nil, err
	}
	var out *models.Product
	err := s.store.WithTx(ctx, func(tx *repository.Repository) error {
		p, err := tx.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProductNotFound
		}
		if err := tx.Products.UpdatePrice(ctx, id, price); err != nil {
			return err
		}
		p.Price = price
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *catalogService) ListAvailableProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.Repos().Products.ListAvailable(ctx)
}

func (s *catalogService) RestaurantsCoveringProducts(ctx context.Context, productIDs []uuid.UUID) ([]models.Restaurant, error) {
	return s.store.Repos().Restaurants.ListCoveringProducts(ctx, productIDs)
}
