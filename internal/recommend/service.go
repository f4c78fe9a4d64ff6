package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pattaradanai-k/product-recommend-backend/internal/category"
	"github.com/pattaradanai-k/product-recommend-backend/internal/product"
	"github.com/pattaradanai-k/product-recommend-backend/internal/user"
)

type Service struct {
	users      UserFinder
	categories CategoryResolver
	products   ProductLister
	stats      Aggregator
	cache      Cache
	metrics    *Metrics
	logger     *zap.Logger
}

// NewService wires the engine's collaborators. cache and metrics may be nil;
// both are acceleration/observability only.
func NewService(users UserFinder, categories CategoryResolver, products ProductLister, stats Aggregator, cache Cache, metrics *Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:      users,
		categories: categories,
		products:   products,
		stats:      stats,
		cache:      cache,
		metrics:    metrics,
		logger:     logger,
	}
}

// Recommend runs the ranking pipeline: user check, optional category
// resolution, candidate retrieval, per-product aggregation and scoring, the
// two-key sort and truncation to limit. Any storage failure aborts the whole
// request; partial results are never returned.
func (s *Service) Recommend(ctx context.Context, userID, limit int, categoryName string) ([]Result, error) {
	if s.metrics != nil {
		defer s.metrics.observe(time.Now())
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	if _, err := s.users.GetByID(userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	cacheKey := fmt.Sprintf("recommend:%d:%s:%d", userID, strings.ToLower(categoryName), limit)
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		return cached, nil
	}

	results, err := s.rank(limit, categoryName)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cacheKey, results)
	return results, nil
}

func (s *Service) rank(limit int, categoryName string) ([]Result, error) {
	candidates, err := s.candidates(categoryName)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return []Result{}, nil
	}

	results := make([]Result, 0, len(candidates))
	for _, p := range candidates {
		st, err := s.stats.Aggregate(p.ID)
		if err != nil {
			return nil, err
		}

		r := Result{
			ProductID:        p.ID,
			Name:             p.Name,
			Description:      p.Description,
			Price:            p.Price,
			CategoryID:       p.CategoryID,
			ImageURL:         p.ImageURL,
			SimilarityScore:  Score(st.AverageRating, st.InteractionCount),
			AverageRating:    math.Round(st.AverageRating*10) / 10,
			InteractionCount: st.InteractionCount,
		}
		if p.CategoryID != nil {
			// display only; a missing category name is reported as absent
			if cat, err := s.categories.GetByID(*p.CategoryID); err == nil {
				name := cat.Name
				r.CategoryName = &name
			} else if !errors.Is(err, category.ErrNotFound) {
				return nil, err
			}
		}
		results = append(results, r)
	}

	// score descending, then name ascending: the deterministic tie-break contract
	sort.Slice(results, func(i, j int) bool {
		if results[i].SimilarityScore != results[j].SimilarityScore {
			return results[i].SimilarityScore > results[j].SimilarityScore
		}
		return results[i].Name < results[j].Name
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// candidates returns the products eligible for scoring. An empty category
// name means no filter (all products); a category name that resolves to
// nothing means an empty candidate set, never "all products".
func (s *Service) candidates(categoryName string) ([]product.Product, error) {
	if categoryName == "" {
		return s.products.List()
	}

	ids, err := s.categories.Resolve(categoryName)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []product.Product{}, nil
	}
	return s.products.ListByCategoryIDs(ids)
}

func (s *Service) cacheGet(ctx context.Context, key string) ([]Result, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Debug("recommendation cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if raw == nil {
		return nil, false
	}
	var results []Result
	if err := json.Unmarshal(raw, &results); err != nil {
		s.logger.Debug("recommendation cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return results, true
}

func (s *Service) cacheSet(ctx context.Context, key string, results []Result) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw); err != nil {
		s.logger.Debug("recommendation cache write failed", zap.String("key", key), zap.Error(err))
	}
}
