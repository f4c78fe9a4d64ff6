package product

import (
	"context"

	"golang.org/x/sync/semaphore"
)

const defaultMaxConcurrentSearches = 32

type Service struct {
	repo Repository
	sem  *semaphore.Weighted
}

// NewService wraps the repository. maxConcurrent bounds in-flight searches
// because the search result set itself is unbounded; values <= 0 fall back
// to the default.
func NewService(repo Repository, maxConcurrent int64) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentSearches
	}
	return &Service{
		repo: repo,
		sem:  semaphore.NewWeighted(maxConcurrent),
	}
}

func (s *Service) List() ([]Product, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByCategoryIDs(ids []int) ([]Product, error) {
	return s.repo.ListByCategoryIDs(ids)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Search(ctx context.Context, params SearchParams) ([]Product, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)
	return s.repo.Search(params)
}
