// Package importer loads catalog seed files: products and restaurants as JSON arrays.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"foodcart-service/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductRecord struct {
	Title         string          `json:"title"`
	Price         decimal.Decimal `json:"price"`
	Img           string          `json:"img"`
	Type          string          `json:"type"`
	Description   string          `json:"description"`
	SpecialStatus bool            `json:"special_status"`
}

type RestaurantRecord struct {
	Title        string `json:"title"`
	Address      string `json:"address"`
	ContactPhone string `json:"contact_phone"`
}

type Result struct {
	Created    []string
	Duplicates []string
}

// LogFields summarizes the run for the final log line.
func (r Result) LogFields() []zap.Field {
	return []zap.Field{
		zap.Int("created", len(r.Created)),
		zap.Int("duplicates", len(r.Duplicates)),
		zap.Strings("duplicate_names", r.Duplicates),
	}
}

type Importer struct {
	catalog     service.CatalogService
	restaurants service.RestaurantService
	log         *zap.Logger
}

func New(catalog service.CatalogService, restaurants service.RestaurantService, log *zap.Logger) *Importer {
	return &Importer{catalog: catalog, restaurants: restaurants, log: log}
}

func decodeAll[T any](r io.Reader) ([]T, error) {
	var records []T
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode import file: %w", err)
	}
	return records, nil
}

// ImportProducts get-or-creates every product by name. The first failing
// record stops the import; rows created before it stay.
func (i *Importer) ImportProducts(ctx context.Context, r io.Reader) (Result, error) {
	records, err := decodeAll[ProductRecord](r)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for n, rec := range records {
		p, created, err := i.catalog.GetOrCreateProduct(ctx, service.ProductInput{
			Name:          rec.Title,
			Price:         rec.Price,
			Image:         rec.Img,
			SpecialStatus: rec.SpecialStatus,
			Description:   rec.Description,
		}, rec.Type)
		if err != nil {
			return res, fmt.Errorf("product #%d %q: %w", n, rec.Title, err)
		}
		if created {
			i.log.Info("product added", zap.String("name", p.Name))
			res.Created = append(res.Created, p.Name)
		} else {
			i.log.Warn("product already exists", zap.String("name", p.Name))
			res.Duplicates = append(res.Duplicates, p.Name)
		}
	}
	return res, nil
}

func (i *Importer) ImportRestaurants(ctx context.Context, r io.Reader) (Result, error) {
	records, err := decodeAll[RestaurantRecord](r)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for n, rec := range records {
		rest, created, err := i.restaurants.GetOrCreateRestaurant(ctx, service.RestaurantInput{
			Name:         rec.Title,
			Address:      rec.Address,
			ContactPhone: rec.ContactPhone,
		})
		if err != nil {
			return res, fmt.Errorf("restaurant #%d %q: %w", n, rec.Title, err)
		}
		if created {
			i.log.Info("restaurant added", zap.String("name", rest.Name))
			res.Created = append(res.Created, rest.Name)
		} else {
			i.log.Warn("restaurant already exists", zap.String("name", rest.Name))
			res.Duplicates = append(res.Duplicates, rest.Name)
		}
	}
	return res, nil
}
