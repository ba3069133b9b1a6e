package service

import (
	"context"
	"time"

	"github.com/hondana-app/library-service/internal/errs"
	"github.com/hondana-app/library-service/internal/model"
)

const rentalPeriod = 7 * 24 * time.Hour

func (s *Service) Checkout(ctx context.Context, isbn int64, userID int) (model.RentalResponse, error) {
	now := time.Now().UTC()
	record, err := s.repo.CreateRental(ctx, isbn, userID, now, now.Add(rentalPeriod))
	if err != nil {
		return model.RentalResponse{}, err
	}
	return model.RentalResponse{
		ID:           record.ID,
		CheckoutDate: record.CheckoutDate,
		DueDate:      record.DueDate,
	}, nil
}

func (s *Service) Return(ctx context.Context, id, userID int) (model.ReturnResponse, error) {
	record, err := s.repo.GetRental(ctx, id)
	if err != nil {
		return model.ReturnResponse{}, err
	}
	if record.UserID != userID {
		return model.ReturnResponse{}, errs.ErrForbidden
	}
	if record.ReturnedDate != nil {
		return model.ReturnResponse{}, errs.ErrAlreadyReturned
	}

	returnedAt, err := s.repo.CloseRental(ctx, id)
	if err != nil {
		return model.ReturnResponse{}, err
	}
	return model.ReturnResponse{ID: id, ReturnedDate: returnedAt, BookISBN: record.BookISBN}, nil
}

func (s *Service) History(ctx context.Context, userID int) (model.HistoryResponse, error) {
	rows, err := s.repo.History(ctx, userID)
	if err != nil {
		return model.HistoryResponse{}, err
	}
	// no records at all is an error, not an empty list
	if len(rows) == 0 {
		return model.HistoryResponse{}, errs.ErrNotFound
	}

	history := make([]model.HistoryItem, 0, len(rows))
	for _, row := range rows {
		history = append(history, model.HistoryItem{
			ID:           row.ID,
			Book:         model.HistoryBook{ISBN: row.BookISBN, Name: row.Title},
			CheckoutDate: row.CheckoutDate,
			DueDate:      row.DueDate,
			ReturnedDate: row.ReturnedDate,
		})
	}
	return model.HistoryResponse{History: history}, nil
}
