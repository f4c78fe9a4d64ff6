package product

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	List() ([]Product, error)
	GetByID(id int) (Product, error)
	// ListByCategoryIDs returns products whose category is in the given set.
	// An empty set yields an empty result, not all products.
	ListByCategoryIDs(ids []int) ([]Product, error)
	Create(p Product) (Product, error)
	Search(params SearchParams) ([]Product, error)
}

// InMemoryRepository is a simple in-memory implementation used by tests.
// Category names and per-product average ratings can be attached so the
// search filters behave like the SQL implementation.
type InMemoryRepository struct {
	mu            sync.RWMutex
	storage       []Product
	categoryNames map[int]string  // category id -> name
	avgRatings    map[int]float64 // product id -> canonical average rating
	nextID        int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage:       make([]Product, 0, len(seed)),
		categoryNames: map[int]string{},
		avgRatings:    map[int]float64{},
		nextID:        1,
	}

	maxID := 0
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

// SetCategoryNames attaches the id->name mapping consulted by the search
// category filter.
func (r *InMemoryRepository) SetCategoryNames(names map[int]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categoryNames = names
}

// SetAverageRatings attaches per-product ratings consulted by the rating sort.
func (r *InMemoryRepository) SetAverageRatings(ratings map[int]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.avgRatings = ratings
}

func (r *InMemoryRepository) List() ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) ListByCategoryIDs(ids []int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	out := make([]Product, 0)
	for _, p := range r.storage {
		if p.CategoryID != nil && want[*p.CategoryID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Search(params SearchParams) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term := strings.ToLower(params.Query)
	out := make([]Product, 0)
	for _, p := range r.storage {
		if term != "" {
			nameHit := strings.Contains(strings.ToLower(p.Name), term)
			descHit := p.Description != nil && strings.Contains(strings.ToLower(*p.Description), term)
			if !nameHit && !descHit {
				continue
			}
		}
		if params.Category != "" {
			if p.CategoryID == nil || !strings.EqualFold(r.categoryNames[*p.CategoryID], params.Category) {
				continue
			}
		}
		if params.MinPrice != nil && p.Price < *params.MinPrice {
			continue
		}
		if params.MaxPrice != nil && p.Price > *params.MaxPrice {
			continue
		}
		out = append(out, p)
	}

	switch params.SortBy {
	case SortPriceAsc:
		sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.Slice(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRating:
		// missing ratings order as 0; product id breaks ties deterministically
		sort.Slice(out, func(i, j int) bool {
			ri, rj := r.avgRatings[out[i].ID], r.avgRatings[out[j].ID]
			if ri != rj {
				return ri > rj
			}
			return out[i].ID < out[j].ID
		})
	}

	if params.Offset > 0 {
		if params.Offset >= len(out) {
			return []Product{}, nil
		}
		out = out[params.Offset:]
	}
	if params.Limit > 0 && len(out) > params.Limit {
		out = out[:params.Limit]
	}
	return out, nil
}
