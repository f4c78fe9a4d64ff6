package category

import (
	"errors"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Category, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Category, error) {
	return s.repo.GetByID(id)
}

// Resolve expands a category name into the matching category id plus the ids
// of its direct children. Grandchildren are deliberately not included.
// An unmatched name is not an error: it resolves to an empty set, which is
// distinct from "no filter" (callers skip Resolve entirely in that case).
func (s *Service) Resolve(name string) ([]int, error) {
	parent, err := s.repo.GetByName(name)
	if errors.Is(err, ErrNotFound) {
		return []int{}, nil
	}
	if err != nil {
		return nil, err
	}

	ids := []int{parent.ID}
	children, err := s.repo.ListChildren(parent.ID)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// Create validates the parent chain before inserting: the parent must exist
// and walking parent links from it must reach a root without revisiting a
// node. The resolver only ever expands one level, so a cycle deeper in the
// tree would otherwise go unnoticed until it corrupts a future query.
func (s *Service) Create(c Category) (Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return Category{}, errors.New("category name is required")
	}

	if c.ParentID != nil {
		if err := s.checkParentChain(*c.ParentID); err != nil {
			return Category{}, err
		}
	}

	return s.repo.Create(c)
}

func (s *Service) checkParentChain(parentID int) error {
	seen := map[int]bool{}
	id := parentID
	for {
		if seen[id] {
			return ErrCyclicParent
		}
		seen[id] = true

		cat, err := s.repo.GetByID(id)
		if errors.Is(err, ErrNotFound) {
			return ErrParentNotFound
		}
		if err != nil {
			return err
		}
		if cat.ParentID == nil {
			return nil
		}
		id = *cat.ParentID
	}
}
