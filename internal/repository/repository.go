package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	DB          *gorm.DB
	Restaurants RestaurantRepo
	Categories  CategoryRepo
	Products    ProductRepo
	Menu        MenuRepo
	Orders      OrderRepo
	OrderItems  OrderItemRepo
	Candidates  CandidateRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:          db,
		Restaurants: NewRestaurantRepo(db),
		Categories:  NewCategoryRepo(db),
		Products:    NewProductRepo(db),
		Menu:        NewMenuRepo(db),
		Orders:      NewOrderRepo(db),
		OrderItems:  NewOrderItemRepo(db),
		Candidates:  NewCandidateRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

// Repos returns the non-transactional view.
func (r *Repository) Repos() *Repository { return r }

// WithTx runs fn with every repo bound to one transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
}
