package interaction

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Aggregate(productID int) (ProductStats, error) {
	return s.repo.Aggregate(productID)
}

// SubmitFeedback rejects an out-of-range rating before touching storage.
func (s *Service) SubmitFeedback(f Feedback) (Feedback, error) {
	if f.Rating < 1 || f.Rating > 5 {
		return Feedback{}, ErrInvalidRating
	}
	return s.repo.SubmitFeedback(f)
}

func (s *Service) RecordView(userID, productID int) error {
	return s.repo.RecordView(userID, productID)
}
