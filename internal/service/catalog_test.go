package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hondana-app/library-service/internal/errs"
	"github.com/hondana-app/library-service/internal/model"
	"github.com/hondana-app/library-service/internal/service"

	repo_mocks "github.com/hondana-app/library-service/internal/repository/mocks"
)

func newTestService(t *testing.T) (*service.Service, *repo_mocks.MockRepository) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	repo := repo_mocks.NewMockRepository(c)
	return service.NewService(repo, service.JWTConfig{Secret: "test"}, zap.NewExample().Named("test")), repo
}

func TestService_UpdateAuthor(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *repo_mocks.MockRepository)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		newName      string
		want         model.NameRef
		wantErr      error
	}{
		{
			name: "ok",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					GetAuthor(context.Background(), 1).
					Return(model.Author{ID: 1, Name: "Soseki"}, nil)
				r.EXPECT().
					UpdateAuthor(context.Background(), 1, "Natsume Soseki").
					Return(model.NameRef{ID: 1, Name: "Natsume Soseki"}, nil)
			},
			newName: "Natsume Soseki",
			want:    model.NameRef{ID: 1, Name: "Natsume Soseki"},
		},
		{
			name: "err. renaming to the current name",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					GetAuthor(context.Background(), 1).
					Return(model.Author{ID: 1, Name: "Natsume Soseki"}, nil)
			},
			newName: "Natsume Soseki",
			wantErr: errs.ErrSameName,
		},
		{
			name: "err. author is soft-deleted",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					GetAuthor(context.Background(), 1).
					Return(model.Author{ID: 1, Name: "Soseki", IsDeleted: true}, nil)
			},
			newName: "Natsume Soseki",
			wantErr: errs.ErrNotFound,
		},
		{
			name: "err. author does not exist",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					GetAuthor(context.Background(), 1).
					Return(model.Author{}, errs.ErrNotFound)
			},
			newName: "Natsume Soseki",
			wantErr: errs.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo := newTestService(t)
			tt.mockBehavior(repo)

			ref, err := svc.UpdateAuthor(context.Background(), 1, tt.newName)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, ref)
		})
	}
}

func TestService_RegisterBook(t *testing.T) {
	t.Parallel()
	req := model.BookRequest{
		ISBN:             9784101010137,
		Title:            "Kokoro",
		AuthorID:         1,
		PublisherID:      2,
		PublicationYear:  1914,
		PublicationMonth: 4,
	}
	type mockBehavior func(r *repo_mocks.MockRepository)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		wantErr      error
	}{
		{
			name: "ok",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					GetBook(context.Background(), req.ISBN).
					Return(model.Book{}, errs.ErrNotFound)
				r.EXPECT().
					GetAuthor(context.Background(), 1).
					Return(model.Author{ID: 1, Name: "Natsume Soseki"}, nil)
				r.EXPECT().
					GetPublisher(context.Background(), 2).
					Return(model.Publisher{ID: 2, Name: "Shinchosha"}, nil)
				r.EXPECT().
					CreateBook(context.Background(), model.Book{
						ISBN:             req.ISBN,
						Title:            req.Title,
						AuthorID:         req.AuthorID,
						PublisherID:      req.PublisherID,
						PublicationYear:  req.PublicationYear,
						PublicationMonth: req.PublicationMonth,
					}).
					Return(nil)
			},
		},
		{
			name: "err. isbn already registered",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					GetBook(context.Background(), req.ISBN).
					Return(model.Book{ISBN: req.ISBN, Title: "Kokoro"}, nil)
			},
			wantErr: errs.ErrAlreadyExists,
		},
		{
			name: "err. deleted isbn is not resurrected",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					GetBook(context.Background(), req.ISBN).
					Return(model.Book{ISBN: req.ISBN, Title: "Kokoro", IsDeleted: true}, nil)
			},
			wantErr: errs.ErrAlreadyExists,
		},
		{
			name: "err. author is soft-deleted",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					GetBook(context.Background(), req.ISBN).
					Return(model.Book{}, errs.ErrNotFound)
				r.EXPECT().
					GetAuthor(context.Background(), 1).
					Return(model.Author{ID: 1, Name: "Natsume Soseki", IsDeleted: true}, nil)
			},
			wantErr: errs.ErrAuthorRef,
		},
		{
			name: "err. publisher does not exist",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					GetBook(context.Background(), req.ISBN).
					Return(model.Book{}, errs.ErrNotFound)
				r.EXPECT().
					GetAuthor(context.Background(), 1).
					Return(model.Author{ID: 1, Name: "Natsume Soseki"}, nil)
				r.EXPECT().
					GetPublisher(context.Background(), 2).
					Return(model.Publisher{}, errs.ErrNotFound)
			},
			wantErr: errs.ErrPublisherRef,
		},
		{
			name: "err. publisher is soft-deleted",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					GetBook(context.Background(), req.ISBN).
					Return(model.Book{}, errs.ErrNotFound)
				r.EXPECT().
					GetAuthor(context.Background(), 1).
					Return(model.Author{ID: 1, Name: "Natsume Soseki"}, nil)
				r.EXPECT().
					GetPublisher(context.Background(), 2).
					Return(model.Publisher{ID: 2, Name: "Shinchosha", IsDeleted: true}, nil)
			},
			wantErr: errs.ErrPublisherRef,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo := newTestService(t)
			tt.mockBehavior(repo)

			err := svc.RegisterBook(context.Background(), req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestService_ListBooks(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *repo_mocks.MockRepository)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		page         int
		want         model.ListBooksResponse
	}{
		{
			name: "twelve books fill three pages",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					CountBooks(gomock.Any()).
					Return(12, nil)
				r.EXPECT().
					ListBooks(gomock.Any(), 1, service.BookPageSize).
					Return([]model.BookListRow{
						{ISBN: 9784101010137, Title: "Kokoro", AuthorName: "Natsume Soseki", PublicationYear: 1914, PublicationMonth: 4},
					}, nil)
			},
			page: 1,
			want: model.ListBooksResponse{
				Current:  1,
				LastPage: 3,
				Books: []model.BookListItem{
					{
						ISBN:                 9784101010137,
						Title:                "Kokoro",
						Author:               model.NameOnly{Name: "Natsume Soseki"},
						PublicationYearMonth: "1914-04",
					},
				},
			},
		},
		{
			name: "page past the last stays empty",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					CountBooks(gomock.Any()).
					Return(12, nil)
				r.EXPECT().
					ListBooks(gomock.Any(), 4, service.BookPageSize).
					Return([]model.BookListRow{}, nil)
			},
			page: 4,
			want: model.ListBooksResponse{
				Current:  4,
				LastPage: 3,
				Books:    []model.BookListItem{},
			},
		},
		{
			name: "exact multiple has no trailing page",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					CountBooks(gomock.Any()).
					Return(10, nil)
				r.EXPECT().
					ListBooks(gomock.Any(), 2, service.BookPageSize).
					Return([]model.BookListRow{}, nil)
			},
			page: 2,
			want: model.ListBooksResponse{
				Current:  2,
				LastPage: 2,
				Books:    []model.BookListItem{},
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo := newTestService(t)
			tt.mockBehavior(repo)

			resp, err := svc.ListBooks(context.Background(), tt.page)
			require.NoError(t, err)
			require.Equal(t, tt.want, resp)
		})
	}
}
