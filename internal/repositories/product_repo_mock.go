package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"fullcolombiano/internal/apperrors"
	"fullcolombiano/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return apperrors.NewNotFoundError("product", product.ID)
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// GetByID returns a product by ID, active or not.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("product", id)
	}
	return &product, nil
}

// List returns active products matching the filter and the total match
// count before pagination. Filtering and ordering mirror the SQL
// implementation so either backend behaves the same.
func (r *MockProductRepository) List(filter ProductFilter) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if !p.IsActive {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.VendorID != "" && p.VendorID != filter.VendorID {
			continue
		}
		if filter.Search != "" && !matchesSearch(p, filter.Search) {
			continue
		}
		matched = append(matched, p)
	}

	sortProducts(matched, filter.Ordering)
	total := int64(len(matched))

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * filter.PageSize
		if start > len(matched) {
			start = len(matched)
		}
		end := start + filter.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

// CountActiveByVendor returns the number of active products owned by a vendor.
func (r *MockProductRepository) CountActiveByVendor(vendorID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, p := range r.products {
		if p.VendorID == vendorID && p.IsActive {
			count++
		}
	}
	return count, nil
}

func matchesSearch(p models.Product, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		strings.Contains(strings.ToLower(p.Category), needle)
}

func sortProducts(products []models.Product, ordering string) {
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")

	var less func(a, b models.Product) bool
	switch field {
	case "price":
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case "name":
		less = func(a, b models.Product) bool { return a.Name < b.Name }
	case "stock":
		less = func(a, b models.Product) bool { return a.Stock < b.Stock }
	case "created_at":
		less = func(a, b models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		// newest first, same default as the SQL backend
		less = func(a, b models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
		desc = true
	}

	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}
