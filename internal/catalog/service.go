// Package catalog manages the billing item catalog: the services, discounts,
// and payment applications that can appear as receipt line items.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/model"
)

// Service provides in-memory lookup over the item catalog.
type Service struct {
	items []model.Item
	byID  map[int]model.Item
}

// NewService creates a Service from a slice of items.
func NewService(items []model.Item) *Service {
	byID := make(map[int]model.Item, len(items))
	for _, i := range items {
		byID[i.ID] = i
	}
	return &Service{items: items, byID: byID}
}

// Load reads catalog/items.csv from a books root and returns a Service.
func Load(booksRoot string) (*Service, error) {
	path := filepath.Join(booksRoot, "catalog", "items.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening item catalog: %w", err)
	}
	defer f.Close()

	items, err := ReadItems(f)
	if err != nil {
		return nil, fmt.Errorf("reading item catalog: %w", err)
	}
	return NewService(items), nil
}

// All returns all catalog items.
func (s *Service) All() []model.Item {
	return s.items
}

// Item returns a catalog item by ID.
func (s *Service) Item(id int) (model.Item, bool) {
	i, ok := s.byID[id]
	return i, ok
}

// Save writes the catalog to catalog/items.csv.
func (s *Service) Save(booksRoot string) error {
	dir := filepath.Join(booksRoot, "catalog")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating catalog dir: %w", err)
	}

	path := filepath.Join(dir, "items.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating item catalog file: %w", err)
	}
	defer f.Close()

	if err := WriteItems(f, s.items); err != nil {
		return fmt.Errorf("writing item catalog: %w", err)
	}
	return nil
}

// DefaultCatalog returns the starter item catalog for a rental property. The
// account IDs line up with accounts.DefaultChart.
func DefaultCatalog() []model.Item {
	return []model.Item{
		{ID: 1, Name: "Monthly Rent", Kind: model.ItemKindService, IncomeAccountID: 4010, AvgCost: decimal.NewFromInt(950)},
		{ID: 2, Name: "Water (metered)", Kind: model.ItemKindService, IncomeAccountID: 4020, AvgCost: decimal.RequireFromString("3.50"), Description: "Per unit of consumption"},
		{ID: 3, Name: "Late Fee", Kind: model.ItemKindService, IncomeAccountID: 4030, AvgCost: decimal.NewFromInt(50)},
		{ID: 4, Name: "Early Payment Discount", Kind: model.ItemKindDiscount, IncomeAccountID: 4090, AvgCost: decimal.NewFromInt(25)},
		{ID: 5, Name: "Deposit Applied", Kind: model.ItemKindPayment, AssetAccountID: 1020},
	}
}
