package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"doc-catalog/internal/domain"
	"doc-catalog/internal/repository"
)

type mockAuthorRepo struct {
	authorsByID map[string]domain.Author
	createErr   error
}

func newMockAuthorRepo() *mockAuthorRepo {
	return &mockAuthorRepo{authorsByID: make(map[string]domain.Author)}
}

func (m *mockAuthorRepo) Create(_ context.Context, author domain.Author) error {
	if m.createErr != nil {
		return m.createErr
	}
	if author.Email != "" {
		for _, a := range m.authorsByID {
			if a.Email == author.Email {
				return repository.ErrDuplicate
			}
		}
	}
	m.authorsByID[author.ID] = author
	return nil
}

func (m *mockAuthorRepo) Update(_ context.Context, author domain.Author) error {
	if _, ok := m.authorsByID[author.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.authorsByID[author.ID] = author
	return nil
}

func (m *mockAuthorRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.authorsByID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.authorsByID, id)
	return nil
}

func (m *mockAuthorRepo) GetByID(_ context.Context, id string) (domain.Author, error) {
	a, ok := m.authorsByID[id]
	if !ok {
		return domain.Author{}, pgx.ErrNoRows
	}
	return a, nil
}

func (m *mockAuthorRepo) GetByEmail(_ context.Context, email string) (domain.Author, error) {
	for _, a := range m.authorsByID {
		if a.Email == email {
			return a, nil
		}
	}
	return domain.Author{}, pgx.ErrNoRows
}

func (m *mockAuthorRepo) GetByName(_ context.Context, name string) (domain.Author, error) {
	for _, a := range m.authorsByID {
		if a.Name == name {
			return a, nil
		}
	}
	return domain.Author{}, pgx.ErrNoRows
}

func (m *mockAuthorRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(context.Background(), email)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (m *mockAuthorRepo) GetAll(_ context.Context) ([]domain.Author, error) {
	var authors []domain.Author
	for _, a := range m.authorsByID {
		authors = append(authors, a)
	}
	return authors, nil
}

func (m *mockAuthorRepo) Search(_ context.Context, term string) ([]domain.Author, error) {
	var authors []domain.Author
	for _, a := range m.authorsByID {
		if containsFold(a.Name, term) || containsFold(a.Email, term) || containsFold(a.Specialization, term) {
			authors = append(authors, a)
		}
	}
	return authors, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func validAuthorInput() AuthorInput {
	return AuthorInput{
		Name:           "Ada Lovelace",
		Email:          "ada@x.com",
		Bio:            "Pioneer",
		Specialization: "Mathematics",
	}
}

func TestAuthorService_CreateAndDuplicate(t *testing.T) {
	repo := newMockAuthorRepo()
	svc := NewAuthorService(zap.NewNop(), repo)

	author, err := svc.Create(context.Background(), validAuthorInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if author.ID == "" {
		t.Fatalf("expected assigned id")
	}

	_, err = svc.Create(context.Background(), validAuthorInput())
	if !errors.Is(err, ErrDuplicateAuthor) {
		t.Fatalf("expected ErrDuplicateAuthor, got %v", err)
	}
}

func TestAuthorService_CreateMissingFields(t *testing.T) {
	repo := newMockAuthorRepo()
	svc := NewAuthorService(zap.NewNop(), repo)

	input := validAuthorInput()
	input.Bio = "  "
	_, err := svc.Create(context.Background(), input)
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestAuthorService_UpdateNotFound(t *testing.T) {
	repo := newMockAuthorRepo()
	svc := NewAuthorService(zap.NewNop(), repo)

	_, err := svc.Update(context.Background(), "missing", validAuthorInput())
	if !errors.Is(err, ErrAuthorNotFound) {
		t.Fatalf("expected ErrAuthorNotFound, got %v", err)
	}
}

func TestAuthorService_UpdateEmailConflict(t *testing.T) {
	repo := newMockAuthorRepo()
	svc := NewAuthorService(zap.NewNop(), repo)

	first, err := svc.Create(context.Background(), validAuthorInput())
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second := validAuthorInput()
	second.Email = "other@x.com"
	created, err := svc.Create(context.Background(), second)
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	conflict := validAuthorInput()
	conflict.Email = first.Email
	_, err = svc.Update(context.Background(), created.ID, conflict)
	if !errors.Is(err, ErrDuplicateAuthor) {
		t.Fatalf("expected ErrDuplicateAuthor, got %v", err)
	}
}

func TestAuthorService_ResolveByIDNotFound(t *testing.T) {
	repo := newMockAuthorRepo()
	svc := NewAuthorService(zap.NewNop(), repo)

	_, err := svc.Resolve(context.Background(), domain.AuthorRef{ID: "999"})
	if !errors.Is(err, ErrAuthorNotFound) {
		t.Fatalf("expected ErrAuthorNotFound, got %v", err)
	}
}

func TestAuthorService_ResolveByEmailIdempotent(t *testing.T) {
	repo := newMockAuthorRepo()
	svc := NewAuthorService(zap.NewNop(), repo)

	first, err := svc.Resolve(context.Background(), domain.AuthorRef{Email: "a@x.com", Name: "First"})
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := svc.Resolve(context.Background(), domain.AuthorRef{Email: "a@x.com", Name: "Second"})
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected same author id, got %s and %s", first.ID, second.ID)
	}
	// El match por email devuelve el autor tal cual; el nombre nuevo de
	// la referencia se descarta.
	if second.Name != "First" {
		t.Fatalf("expected stored name, got %q", second.Name)
	}
	if len(repo.authorsByID) != 1 {
		t.Fatalf("expected one author, got %d", len(repo.authorsByID))
	}
}

func TestAuthorService_ResolveByNameAlwaysCreates(t *testing.T) {
	repo := newMockAuthorRepo()
	svc := NewAuthorService(zap.NewNop(), repo)

	first, err := svc.Resolve(context.Background(), domain.AuthorRef{Name: "Same Name"})
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := svc.Resolve(context.Background(), domain.AuthorRef{Name: "Same Name"})
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}

	if first.ID == second.ID {
		t.Fatalf("expected distinct authors for name-only references")
	}
	if len(repo.authorsByID) != 2 {
		t.Fatalf("expected two authors, got %d", len(repo.authorsByID))
	}
}

func TestAuthorService_ResolveDuplicateEmail(t *testing.T) {
	repo := newMockAuthorRepo()
	svc := NewAuthorService(zap.NewNop(), repo)
	repo.createErr = repository.ErrDuplicate

	_, err := svc.Resolve(context.Background(), domain.AuthorRef{Email: "dup@x.com"})
	if !errors.Is(err, ErrDuplicateAuthor) {
		t.Fatalf("expected ErrDuplicateAuthor, got %v", err)
	}
}

func TestAuthorService_DeleteNotFound(t *testing.T) {
	repo := newMockAuthorRepo()
	svc := NewAuthorService(zap.NewNop(), repo)

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrAuthorNotFound) {
		t.Fatalf("expected ErrAuthorNotFound, got %v", err)
	}
}

func TestAuthorService_ResolveByEmailCreatesWhenAbsent(t *testing.T) {
	repo := newMockAuthorRepo()
	svc := NewAuthorService(zap.NewNop(), repo)

	author, err := svc.Resolve(context.Background(), domain.AuthorRef{
		Email: "fresh@x.com",
		Name:  "Fresh",
		Bio:   "New author",
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if author.Email != "fresh@x.com" || author.Name != "Fresh" || author.Bio != "New author" {
		t.Fatalf("expected author created from reference, got %+v", author)
	}
	if author.CreatedAt.IsZero() || author.CreatedAt.After(time.Now().UTC()) {
		t.Fatalf("unexpected created at: %v", author.CreatedAt)
	}
}
