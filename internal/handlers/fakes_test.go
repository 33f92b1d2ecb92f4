package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront-catalog/internal/media"
	"storefront-catalog/internal/models"
	"storefront-catalog/internal/repository"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// memStore es un ProductStore en memoria para probar flujos completos
type memStore struct {
	mu       sync.Mutex
	products map[string]models.Product
	saves    int
}

func newMemStore(seed ...models.Product) *memStore {
	s := &memStore{products: make(map[string]models.Product)}
	for _, p := range seed {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.products[p.ID.Hex()] = p
	}
	return s
}

func (s *memStore) get(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok
}

func (s *memStore) Create(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.products[p.ID.Hex()] = *p
	return nil
}

func (s *memStore) FindByID(_ context.Context, id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *memStore) all() []models.Product {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *memStore) Latest(_ context.Context, n int) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.all()
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (s *memStore) Featured(_ context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0)
	for _, p := range s.all() {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) Categories(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *memStore) List(_ context.Context, page, pageSize int, _ models.SortBy) (models.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return paginate(s.all(), page, pageSize), nil
}

func (s *memStore) Search(_ context.Context, q repository.SearchQuery) (models.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.Product
	for _, p := range s.all() {
		if q.Name != nil && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(*q.Name)) {
			continue
		}
		if q.Category != nil && p.Category != models.NormalizeCategory(*q.Category) {
			continue
		}
		if q.Price != nil {
			if q.Price.Min != nil && p.Price < *q.Price.Min {
				continue
			}
			if q.Price.Max != nil && p.Price > *q.Price.Max {
				continue
			}
		}
		matched = append(matched, p)
	}
	switch q.Sort {
	case models.SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case models.SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	}
	return paginate(matched, q.Page, q.PageSize), nil
}

func paginate(all []models.Product, page, pageSize int) models.Page {
	skip := int(models.Skip(page, pageSize))
	out := make([]models.Product, 0)
	for i := skip; i < len(all) && i < skip+pageSize; i++ {
		out = append(out, all[i])
	}
	return models.Page{Products: out, Total: int64(len(all))}
}

func (s *memStore) Save(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID.Hex()]; !ok {
		return repository.ErrNotFound
	}
	s.saves++
	s.products[p.ID.Hex()] = *p
	return nil
}

func (s *memStore) ToggleFeatured(_ context.Context, id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Featured = !p.Featured
	s.products[id] = p
	return &p, nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

// mockStore se usa para inyectar errores y capturar argumentos
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Create(ctx context.Context, p *models.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockStore) Latest(ctx context.Context, n int) ([]models.Product, error) {
	args := m.Called(ctx, n)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *mockStore) Featured(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *mockStore) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]string)
	return categories, args.Error(1)
}

func (m *mockStore) List(ctx context.Context, page, pageSize int, sortBy models.SortBy) (models.Page, error) {
	args := m.Called(ctx, page, pageSize, sortBy)
	return args.Get(0).(models.Page), args.Error(1)
}

func (m *mockStore) Search(ctx context.Context, q repository.SearchQuery) (models.Page, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(models.Page), args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, p *models.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockStore) ToggleFeatured(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// stubMedia registra las subidas y borrados
type stubMedia struct {
	mu        sync.Mutex
	uploads   []string
	deletes   []string
	uploadErr error
	deleteErr error
}

func (m *stubMedia) Upload(_ context.Context, filename string, file io.Reader) (media.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uploadErr != nil {
		return media.Asset{}, m.uploadErr
	}
	if _, err := io.ReadAll(file); err != nil {
		return media.Asset{}, err
	}
	m.uploads = append(m.uploads, filename)
	id := fmt.Sprintf("products/%s-%d", strings.TrimSuffix(filename, ".jpg"), len(m.uploads))
	return media.Asset{URL: "https://cdn.test/" + id, PublicID: id}, nil
}

func (m *stubMedia) Delete(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletes = append(m.deletes, publicID)
	return nil
}

var errStoreDown = errors.New("server selection error: context deadline exceeded")
