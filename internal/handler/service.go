package handler

import (
	"context"

	"github.com/hondana-app/library-service/internal/model"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

type CatalogService interface {
	RegisterAuthor(ctx context.Context, name string) (model.NameRef, error)
	UpdateAuthor(ctx context.Context, id int, name string) (model.NameRef, error)
	DeleteAuthor(ctx context.Context, id int) error
	SearchAuthors(ctx context.Context, keyword string) ([]model.NameRef, error)

	RegisterPublisher(ctx context.Context, name string) (model.NameRef, error)
	UpdatePublisher(ctx context.Context, id int, name string) (model.NameRef, error)
	DeletePublisher(ctx context.Context, id int) error
	SearchPublishers(ctx context.Context, keyword string) ([]model.NameRef, error)

	RegisterBook(ctx context.Context, req model.BookRequest) error
	UpdateBook(ctx context.Context, req model.BookRequest) error
	DeleteBook(ctx context.Context, isbn int64) error
	ListBooks(ctx context.Context, page int) (model.ListBooksResponse, error)
	BookDetail(ctx context.Context, isbn int64) (model.BookDetailResponse, error)
}

type RentalService interface {
	Checkout(ctx context.Context, isbn int64, userID int) (model.RentalResponse, error)
	Return(ctx context.Context, id, userID int) (model.ReturnResponse, error)
	History(ctx context.Context, userID int) (model.HistoryResponse, error)
}

type UserService interface {
	RegisterUser(ctx context.Context, req model.RegisterUserRequest) error
	Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
	ChangeUserName(ctx context.Context, userID int, name string) error
}

type StatsService interface {
	RentalStats(ctx context.Context) (model.StatsResponse, error)
}
