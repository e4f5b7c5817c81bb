package catalogtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/yndnr/libros-go/internal/core/domain"
)

// Request is one request seen by the server.
type Request struct {
	Method        string
	Path          string
	Authorization string
}

// Server is an in-memory catalog.
type Server struct {
	mu       sync.Mutex
	books    map[string]domain.Book
	users    map[string]string
	tokens   map[string]bool
	requests []Request

	newCode  func() string
	newToken func() string
	open     bool
}

// Option configures a Server.
type Option func(*Server)

// WithUser registers a credential pair accepted by /login.
func WithUser(email, password string) Option {
	return func(s *Server) {
		s.users[email] = password
	}
}

// WithBooks seeds the catalog.
func WithBooks(books ...domain.Book) Option {
	return func(s *Server) {
		for _, b := range books {
			s.books[b.Code] = b
		}
	}
}

// WithCodeGenerator sets the function assigning codes to created books.
func WithCodeGenerator(fn func() string) Option {
	return func(s *Server) {
		s.newCode = fn
	}
}

// WithCodes assigns the given codes to created books in order, then falls
// back to generated ones.
func WithCodes(codes ...string) Option {
	return WithCodeGenerator(sequence(codes, defaultCode))
}

// WithTokens issues the given tokens on successful logins in order.
func WithTokens(tokens ...string) Option {
	return func(s *Server) {
		s.newToken = sequence(tokens, uuid.NewString)
	}
}

// WithOpenAccess disables the bearer check on catalog routes.
func WithOpenAccess() Option {
	return func(s *Server) {
		s.open = true
	}
}

// New creates a server. Catalog routes require a token issued by /login
// unless WithOpenAccess is given.
func New(opts ...Option) *Server {
	s := &Server{
		books:    make(map[string]domain.Book),
		users:    make(map[string]string),
		tokens:   make(map[string]bool),
		newCode:  defaultCode,
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultCode() string {
	return "L-" + strings.ToUpper(uuid.NewString()[:8])
}

func sequence(values []string, fallback func() string) func() string {
	var mu sync.Mutex
	next := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		if next < len(values) {
			v := values[next]
			next++
			return v
		}
		return fallback()
	}
}

// Handler returns the HTTP handler of the catalog.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.record)

	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	books := r.PathPrefix("/libros").Subrouter()
	books.Use(s.requireToken)
	books.HandleFunc("", s.handleList).Methods(http.MethodGet)
	books.HandleFunc("", s.handleCreate).Methods(http.MethodPost)
	books.HandleFunc("/categoria/{categoria}", s.handleByCategory).Methods(http.MethodGet)
	books.HandleFunc("/{codigo}", s.handleGet).Methods(http.MethodGet)
	books.HandleFunc("/{codigo}", s.handleUpdate).Methods(http.MethodPut)
	books.HandleFunc("/{codigo}", s.handleDelete).Methods(http.MethodDelete)

	return r
}

// Start serves the catalog on a local test listener until the test ends
// and returns its base URL.
func (s *Server) Start(tb testing.TB) string {
	tb.Helper()
	ts := httptest.NewServer(s.Handler())
	tb.Cleanup(ts.Close)
	return ts.URL
}

// Requests returns a copy of the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RevokeTokens invalidates every issued token.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]bool)
}

// Book returns the stored book with the given code.
func (s *Server) Book(code string) (domain.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[code]
	return b, ok
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.open {
			next.ServeHTTP(w, r)
			return
		}
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		valid := ok && s.tokens[token]
		s.mu.Unlock()
		if !valid {
			writeJSON(w, http.StatusUnauthorized, detail("Not authenticated"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, fieldErrors(fieldError{[]string{"body"}, "invalid JSON body"}))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	password, known := s.users[creds.Email]
	if !known || password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, detail("Credenciales incorrectas"))
		return
	}

	token := s.newToken()
	s.tokens[token] = true
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.sorted(func(domain.Book) bool { return true }))
}

func (s *Server) handleByCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["categoria"]

	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.sorted(func(b domain.Book) bool { return b.Category == category }))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["codigo"]

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[code]
	if !ok {
		writeJSON(w, http.StatusNotFound, detail("Libro no encontrado"))
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := in.WithCode(s.newCode())
	s.books[b.Code] = b
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["codigo"]

	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.books[code]; !exists {
		writeJSON(w, http.StatusNotFound, detail("Libro no encontrado"))
		return
	}
	b := in.WithCode(code)
	s.books[code] = b
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["codigo"]

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.books[code]; !exists {
		writeJSON(w, http.StatusNotFound, detail("Libro no encontrado"))
		return
	}
	delete(s.books, code)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Libro eliminado"})
}

// sorted returns matching books ordered by code. Caller holds s.mu.
func (s *Server) sorted(match func(domain.Book) bool) []domain.Book {
	out := make([]domain.Book, 0, len(s.books))
	for _, b := range s.books {
		if match(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

type fieldError struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

func fieldErrors(errs ...fieldError) map[string]any {
	return map[string]any{"detail": errs}
}

func detail(msg string) map[string]any {
	return map[string]any{"detail": msg}
}

// decodeInput reads and validates a book body, answering 422 with a field
// list on failure.
func decodeInput(w http.ResponseWriter, r *http.Request) (domain.BookInput, bool) {
	var in domain.BookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, fieldErrors(fieldError{[]string{"body"}, "invalid JSON body"}))
		return in, false
	}

	var errs []fieldError
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, fieldError{[]string{"body", "titulo"}, "field required"})
	}
	if strings.TrimSpace(in.Author) == "" {
		errs = append(errs, fieldError{[]string{"body", "autor"}, "field required"})
	}
	if in.Year <= 0 {
		errs = append(errs, fieldError{[]string{"body", "anio"}, "ensure this value is greater than 0"})
	}
	if strings.TrimSpace(in.Category) == "" {
		errs = append(errs, fieldError{[]string{"body", "categoria"}, "field required"})
	}
	if in.PageCount <= 0 {
		errs = append(errs, fieldError{[]string{"body", "numPaginas"}, "ensure this value is greater than 0"})
	}
	if len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, fieldErrors(errs...))
		return in, false
	}
	return in, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
