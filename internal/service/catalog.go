package service

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hondana-app/library-service/internal/errs"
	"github.com/hondana-app/library-service/internal/model"
)

// BookPageSize is the fixed page size of the book list.
const BookPageSize = 5

func (s *Service) RegisterAuthor(ctx context.Context, name string) (model.NameRef, error) {
	return s.repo.CreateAuthor(ctx, name)
}

func (s *Service) UpdateAuthor(ctx context.Context, id int, name string) (model.NameRef, error) {
	author, err := s.repo.GetAuthor(ctx, id)
	if err != nil {
		return model.NameRef{}, err
	}
	if author.IsDeleted {
		return model.NameRef{}, errs.ErrNotFound
	}
	if author.Name == name {
		return model.NameRef{}, errs.ErrSameName
	}
	return s.repo.UpdateAuthor(ctx, id, name)
}

func (s *Service) DeleteAuthor(ctx context.Context, id int) error {
	return s.repo.DeleteAuthor(ctx, id)
}

func (s *Service) SearchAuthors(ctx context.Context, keyword string) ([]model.NameRef, error) {
	return s.repo.SearchAuthors(ctx, keyword)
}

func (s *Service) RegisterPublisher(ctx context.Context, name string) (model.NameRef, error) {
	return s.repo.CreatePublisher(ctx, name)
}

func (s *Service) UpdatePublisher(ctx context.Context, id int, name string) (model.NameRef, error) {
	publisher, err := s.repo.GetPublisher(ctx, id)
	if err != nil {
		return model.NameRef{}, err
	}
	if publisher.IsDeleted {
		return model.NameRef{}, errs.ErrNotFound
	}
	if publisher.Name == name {
		return model.NameRef{}, errs.ErrSameName
	}
	return s.repo.UpdatePublisher(ctx, id, name)
}

func (s *Service) DeletePublisher(ctx context.Context, id int) error {
	return s.repo.DeletePublisher(ctx, id)
}

func (s *Service) SearchPublishers(ctx context.Context, keyword string) ([]model.NameRef, error) {
	return s.repo.SearchPublishers(ctx, keyword)
}

// checkBookRefs verifies the referenced author and publisher exist and are
// not soft-deleted at the time of the read. The FK constraints in the
// repository still reject references that never existed; a soft-delete
// landing between this read and the write goes through.
func (s *Service) checkBookRefs(ctx context.Context, authorID, publisherID int) error {
	author, err := s.repo.GetAuthor(ctx, authorID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrAuthorRef
		}
		return err
	}
	if author.IsDeleted {
		return errs.ErrAuthorRef
	}

	publisher, err := s.repo.GetPublisher(ctx, publisherID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrPublisherRef
		}
		return err
	}
	if publisher.IsDeleted {
		return errs.ErrPublisherRef
	}
	return nil
}

func (s *Service) RegisterBook(ctx context.Context, req model.BookRequest) error {
	if _, err := s.repo.GetBook(ctx, req.ISBN); err == nil {
		// registration never resurrects a deleted isbn
		return errs.ErrAlreadyExists
	} else if !errors.Is(err, errs.ErrNotFound) {
		return err
	}

	if err := s.checkBookRefs(ctx, req.AuthorID, req.PublisherID); err != nil {
		return err
	}

	return s.repo.CreateBook(ctx, model.Book{
		ISBN:             req.ISBN,
		Title:            req.Title,
		AuthorID:         req.AuthorID,
		PublisherID:      req.PublisherID,
		PublicationYear:  req.PublicationYear,
		PublicationMonth: req.PublicationMonth,
	})
}

func (s *Service) UpdateBook(ctx context.Context, req model.BookRequest) error {
	book, err := s.repo.GetBook(ctx, req.ISBN)
	if err != nil {
		return err
	}
	if book.IsDeleted {
		return errs.ErrNotFound
	}

	if err := s.checkBookRefs(ctx, req.AuthorID, req.PublisherID); err != nil {
		return err
	}

	return s.repo.UpdateBook(ctx, model.Book{
		ISBN:             req.ISBN,
		Title:            req.Title,
		AuthorID:         req.AuthorID,
		PublisherID:      req.PublisherID,
		PublicationYear:  req.PublicationYear,
		PublicationMonth: req.PublicationMonth,
	})
}

func (s *Service) DeleteBook(ctx context.Context, isbn int64) error {
	return s.repo.DeleteBook(ctx, isbn)
}

func (s *Service) ListBooks(ctx context.Context, page int) (model.ListBooksResponse, error) {
	var (
		total int
		rows  []model.BookListRow
	)
	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		var err error
		total, err = s.repo.CountBooks(ctx)
		return err
	})
	gg.Go(func() error {
		var err error
		rows, err = s.repo.ListBooks(ctx, page, BookPageSize)
		return err
	})
	if err := gg.Wait(); err != nil {
		return model.ListBooksResponse{}, err
	}

	books := make([]model.BookListItem, 0, len(rows))
	for _, row := range rows {
		books = append(books, model.BookListItem{
			ISBN:                 row.ISBN,
			Title:                row.Title,
			Author:               model.NameOnly{Name: row.AuthorName},
			PublicationYearMonth: model.YearMonth(row.PublicationYear, row.PublicationMonth),
		})
	}

	return model.ListBooksResponse{
		Current:  page,
		LastPage: (total + BookPageSize - 1) / BookPageSize,
		Books:    books,
	}, nil
}

func (s *Service) BookDetail(ctx context.Context, isbn int64) (model.BookDetailResponse, error) {
	row, err := s.repo.GetBookDetail(ctx, isbn)
	if err != nil {
		return model.BookDetailResponse{}, err
	}
	return model.BookDetailResponse{
		ISBN:                 row.ISBN,
		Title:                row.Title,
		Author:               model.NameOnly{Name: row.AuthorName},
		Publisher:            model.NameOnly{Name: row.PublisherName},
		PublicationYearMonth: model.YearMonthDetail(row.PublicationYear, row.PublicationMonth),
	}, nil
}
