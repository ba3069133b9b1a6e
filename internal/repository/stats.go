package repository

import (
	"context"
	"fmt"

	"github.com/hondana-app/library-service/internal/model"
)

func (r *repository) ApplyRentalEvent(ctx context.Context, event model.RentalEvent) error {
	checkouts, returns := 0, 0
	switch event.Type {
	case model.EventCheckout:
		checkouts = 1
	case model.EventReturn:
		returns = 1
	default:
		return fmt.Errorf("unknown rental event type %q", event.Type)
	}

	q := fmt.Sprintf(`insert into %s (book_isbn, checkout_count, return_count)
values ($1, $2, $3)
on conflict (book_isbn) do update
	set checkout_count = %s.checkout_count + excluded.checkout_count,
	    return_count   = %s.return_count + excluded.return_count`,
		rentalStatsTableName, rentalStatsTableName, rentalStatsTableName)

	_, err := r.db.ExecContext(ctx, q, event.BookISBN, checkouts, returns)
	return err
}

func (r *repository) GetRentalStats(ctx context.Context) ([]model.RentalStat, error) {
	query, args, err := qb.Select("book_isbn", "checkout_count", "return_count").
		From(rentalStatsTableName).
		OrderBy("checkout_count desc", "book_isbn").
		ToSql()
	if err != nil {
		return nil, err
	}

	stats := make([]model.RentalStat, 0)
	if err := r.db.SelectContext(ctx, &stats, query, args...); err != nil {
		return nil, err
	}
	return stats, nil
}
