package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/yndnr/libros-go/internal/core/domain"
	"github.com/yndnr/libros-go/internal/telemetry/logger"
)

const booksPath = "/libros"

// CatalogService performs the book operations against the catalog.
type CatalogService struct {
	gw             Gateway
	onUnauthorized UnauthorizedHandler
	log            logger.Logger
}

// CatalogOption configures a CatalogService.
type CatalogOption func(*CatalogService)

// WithUnauthorizedHandler registers h to be called on every 401.
func WithUnauthorizedHandler(h UnauthorizedHandler) CatalogOption {
	return func(s *CatalogService) {
		s.onUnauthorized = h
	}
}

// WithCatalogLogger sets the logger for failed calls.
func WithCatalogLogger(l logger.Logger) CatalogOption {
	return func(s *CatalogService) {
		s.log = l
	}
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(gw Gateway, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{
		gw:  gw,
		log: logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every book in the catalog.
func (s *CatalogService) List(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	if err := s.call(ctx, "list", http.MethodGet, booksPath, nil, &books); err != nil {
		return nil, err
	}
	return nonNil(books), nil
}

// Get returns the book with the given code.
func (s *CatalogService) Get(ctx context.Context, code string) (*domain.Book, error) {
	if err := domain.ValidateCode(code); err != nil {
		return nil, err
	}

	var book domain.Book
	if err := s.call(ctx, "get", http.MethodGet, bookPath(code), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// ListByCategory returns the books of a category. No match is an empty
// slice, not an error.
func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]domain.Book, error) {
	if err := domain.ValidateCategory(category); err != nil {
		return nil, err
	}

	var books []domain.Book
	path := booksPath + "/categoria/" + url.PathEscape(category)
	if err := s.call(ctx, "list_by_category", http.MethodGet, path, nil, &books); err != nil {
		return nil, err
	}
	return nonNil(books), nil
}

// Create adds a book. The returned book carries the server-assigned code.
func (s *CatalogService) Create(ctx context.Context, in domain.BookInput) (*domain.Book, error) {
	var book domain.Book
	if err := s.call(ctx, "create", http.MethodPost, booksPath, in, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// Update replaces every field of the book with the given code.
func (s *CatalogService) Update(ctx context.Context, code string, in domain.BookInput) (*domain.Book, error) {
	if err := domain.ValidateCode(code); err != nil {
		return nil, err
	}

	var book domain.Book
	if err := s.call(ctx, "update", http.MethodPut, bookPath(code), in, &book); err != nil {
		return nil, err
	}
	// Some servers answer an update with an empty body.
	if book.Code == "" {
		book = in.WithCode(code)
	}
	return &book, nil
}

// Delete removes the book with the given code.
func (s *CatalogService) Delete(ctx context.Context, code string) error {
	if err := domain.ValidateCode(code); err != nil {
		return err
	}
	return s.call(ctx, "delete", http.MethodDelete, bookPath(code), nil, nil)
}

// call sends one request, classifying and logging failures.
func (s *CatalogService) call(ctx context.Context, op, method, path string, body, target any) error {
	err := s.gw.Send(ctx, method, path, body, target)
	if err == nil {
		return nil
	}

	se := classify(err)
	if se.Kind == domain.KindUnauthorized && s.onUnauthorized != nil {
		se.SessionCleared = s.onUnauthorized.HandleUnauthorized(ctx)
	}

	s.log.WithContext(ctx).Error("catalog call failed",
		"op", op,
		"method", method,
		"path", path,
		"kind", se.Kind.String(),
		"status", se.StatusCode,
		"reason", se.Message(),
	)
	return se
}

func bookPath(code string) string {
	return booksPath + "/" + url.PathEscape(code)
}

func nonNil(books []domain.Book) []domain.Book {
	if books == nil {
		return []domain.Book{}
	}
	return books
}
