package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/haatos/simple-shop/internal/access"
	"github.com/haatos/simple-shop/internal/store"
	"github.com/haatos/simple-shop/internal/util"
)

const defaultProductImage = "/placeholder.svg"

type ProductStore interface {
	CreateProduct(context.Context, *store.Product) (*store.Product, error)
	ReadProductByID(context.Context, int64) (*store.Product, error)
	ListProducts(context.Context) ([]*store.Product, error)
	CountProducts(context.Context) (int64, error)
	DeleteProduct(context.Context, int64) error
}

type ProductParams struct {
	Name     string `json:"name"     yaml:"name"     validate:"required,max=200"`
	Price    int64  `json:"price"    yaml:"price"    validate:"gt=0"`
	Category string `json:"category" yaml:"category" validate:"required,max=100"`
	Image    string `json:"image"    yaml:"image"`
}

func (p ProductParams) toProduct() *store.Product {
	image := strings.TrimSpace(p.Image)
	if image == "" {
		image = defaultProductImage
	}
	return &store.Product{
		Name:     strings.TrimSpace(p.Name),
		Price:    p.Price,
		Category: strings.TrimSpace(p.Category),
		Image:    image,
		InStock:  true,
	}
}

type catalogFile struct {
	Products []ProductParams `yaml:"products"`
}

type CatalogService struct {
	productStore ProductStore
}

func NewCatalogService(s ProductStore) *CatalogService {
	return &CatalogService{productStore: s}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*store.Product, error) {
	return s.productStore.ListProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, productID int64) (*store.Product, error) {
	return s.productStore.ReadProductByID(ctx, productID)
}

func (s *CatalogService) AddProduct(
	ctx context.Context,
	actor *store.Account,
	p ProductParams,
) (*store.Product, error) {
	if err := access.Authorize(SubjectOf(actor), access.AddProduct); err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	return s.productStore.CreateProduct(ctx, p.toProduct())
}

func (s *CatalogService) DeleteProduct(
	ctx context.Context,
	actor *store.Account,
	productID int64,
) error {
	if err := access.Authorize(SubjectOf(actor), access.DeleteProduct); err != nil {
		return err
	}
	return s.productStore.DeleteProduct(ctx, productID)
}

// SeedCatalog fills an empty catalog from the YAML file at path, or from
// fallback when the file does not exist.
func (s *CatalogService) SeedCatalog(ctx context.Context, path string, fallback []byte) error {
	count, err := s.productStore.CountProducts(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	data := fallback
	if path != "" {
		if exists, _ := util.PathExists(path); exists {
			data, err = os.ReadFile(path)
			if err != nil {
				return err
			}
		}
	}

	products, err := parseCatalog(data)
	if err != nil {
		return err
	}
	for _, p := range products {
		if _, err := s.productStore.CreateProduct(ctx, p.toProduct()); err != nil {
			return err
		}
	}
	log.Printf("seeded catalog with %d products\n", len(products))
	return nil
}

func parseCatalog(data []byte) ([]ProductParams, error) {
	cf := new(catalogFile)
	if err := yaml.Unmarshal(data, cf); err != nil {
		return nil, err
	}
	for i, p := range cf.Products {
		if err := validateStruct(p); err != nil {
			return nil, fmt.Errorf("catalog product %d: %w", i+1, err)
		}
	}
	return cf.Products, nil
}
