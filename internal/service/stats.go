package service

import (
	"context"

	"github.com/hondana-app/library-service/internal/model"
)

// ApplyRentalEvent folds a consumed rental event into the per-book counters.
func (s *Service) ApplyRentalEvent(ctx context.Context, event model.RentalEvent) error {
	return s.repo.ApplyRentalEvent(ctx, event)
}

func (s *Service) RentalStats(ctx context.Context) (model.StatsResponse, error) {
	stats, err := s.repo.GetRentalStats(ctx)
	if err != nil {
		return model.StatsResponse{}, err
	}

	resp := model.StatsResponse{Books: stats}
	for _, stat := range stats {
		resp.TotalCheckouts += stat.CheckoutCount
		resp.TotalReturns += stat.ReturnCount
	}
	return resp, nil
}
