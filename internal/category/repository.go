package category

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrNotFound       = errors.New("category not found")
	ErrParentNotFound = errors.New("parent category not found")
	ErrCyclicParent   = errors.New("category parent chain contains a cycle")
)

type Repository interface {
	List() ([]Category, error)
	GetByID(id int) (Category, error)
	// GetByName matches case-insensitively; ErrNotFound when no category has the name.
	GetByName(name string) (Category, error)
	// ListChildren returns categories whose direct parent is the given id.
	ListChildren(parentID int) ([]Category, error)
	Create(c Category) (Category, error)
}

// InMemoryRepository backs service tests and local scenarios.
type InMemoryRepository struct {
	mu         sync.RWMutex
	categories []Category
	nextID     int
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	r := &InMemoryRepository{
		categories: make([]Category, 0, len(seed)),
		nextID:     1,
	}

	maxID := 0
	for _, c := range seed {
		r.categories = append(r.categories, c)
		if c.ID > maxID {
			maxID = c.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) GetByName(name string) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) ListChildren(parentID int) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, 0)
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	r.categories = append(r.categories, c)
	return c, nil
}
