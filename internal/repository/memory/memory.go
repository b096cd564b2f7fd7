// Package memory is the in-process record store. It backs demo mode and the
// test suite; a single mutex is enough because the store is single-writer
// and single-process.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/abiwaumi/tablewater/internal/domain/models"
)

// Store holds every collection behind one lock.
type Store struct {
	mu         sync.RWMutex
	production []models.Production
	sales      []models.Sale
	expenses   []models.Expense
	resources  []models.Resource
	users      map[string]models.User
	reports    []models.DailyReport
	now        func() time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users: make(map[string]models.User),
		now:   time.Now,
	}
}

// DemoPassword is the credential every seeded demo account accepts.
const DemoPassword = "password"

// SeedDemoUsers provisions the three demo accounts, one per role.
func (s *Store) SeedDemoUsers() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range []struct {
		name  string
		email string
		role  models.Role
	}{
		{"Admin User", "admin@abiwaumi.com", models.RoleAdmin},
		{"Staff Member", "staff@abiwaumi.com", models.RoleStaff},
		{"Viewer User", "viewer@abiwaumi.com", models.RoleViewer},
	} {
		now := s.now()
		s.users[u.email] = models.User{
			ID:           uuid.NewString(),
			Email:        u.email,
			FullName:     u.name,
			Role:         u.role,
			PasswordHash: string(hash),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}
	return nil
}

// AddUser registers an account directly. Used by tests and seeding.
func (s *Store) AddUser(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	s.users[strings.ToLower(user.Email)] = user
}

func inRange(date, start, end string) bool {
	return date >= start && date <= end
}

func newestFirst[T interface{ RecordDate() string }](records []T) []T {
	out := make([]T, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordDate() > out[j].RecordDate()
	})
	return out
}

func filterRange[T interface{ RecordDate() string }](records []T, start, end string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if inRange(r.RecordDate(), start, end) {
			out = append(out, r)
		}
	}
	return newestFirst(out)
}

func (s *Store) ListProduction(_ context.Context) ([]models.Production, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.production), nil
}

func (s *Store) ListProductionInRange(_ context.Context, start, end string) ([]models.Production, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterRange(s.production, start, end), nil
}

func (s *Store) CreateProduction(_ context.Context, rec models.Production) (models.Production, error) {
	if err := rec.Validate(); err != nil {
		return models.Production{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = uuid.NewString()
	rec.CreatedAt = s.now()
	s.production = append(s.production, rec)
	return rec, nil
}

func (s *Store) ListSales(_ context.Context) ([]models.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.sales), nil
}

func (s *Store) ListSalesInRange(_ context.Context, start, end string) ([]models.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterRange(s.sales, start, end), nil
}

// CreateSale freezes revenue from the unit price in effect now. Stored
// revenue is never recomputed on read.
func (s *Store) CreateSale(_ context.Context, rec models.Sale) (models.Sale, error) {
	if err := rec.Validate(); err != nil {
		return models.Sale{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = uuid.NewString()
	rec.Revenue = models.RevenueFor(rec.BagsSold)
	rec.CreatedAt = s.now()
	s.sales = append(s.sales, rec)
	return rec, nil
}

func (s *Store) ListExpenses(_ context.Context) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.expenses), nil
}

func (s *Store) ListExpensesInRange(_ context.Context, start, end string) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterRange(s.expenses, start, end), nil
}

func (s *Store) CreateExpense(_ context.Context, rec models.Expense) (models.Expense, error) {
	if err := rec.Validate(); err != nil {
		return models.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = uuid.NewString()
	rec.CreatedAt = s.now()
	s.expenses = append(s.expenses, rec)
	return rec, nil
}

// ListResources preserves insertion order; low-stock filtering downstream
// relies on it.
func (s *Store) ListResources(_ context.Context) ([]models.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Resource, len(s.resources))
	copy(out, s.resources)
	return out, nil
}

func (s *Store) CreateResource(_ context.Context, rec models.Resource) (models.Resource, error) {
	if err := rec.Validate(); err != nil {
		return models.Resource{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = uuid.NewString()
	rec.CreatedAt = s.now()
	rec.UpdatedAt = rec.CreatedAt
	s.resources = append(s.resources, rec)
	return rec, nil
}

func (s *Store) UpdateResource(_ context.Context, id string, patch models.ResourcePatch) (models.Resource, error) {
	if err := patch.Validate(); err != nil {
		return models.Resource{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.resources {
		if s.resources[i].ID != id {
			continue
		}
		patch.Apply(&s.resources[i])
		s.resources[i].UpdatedAt = s.now()
		return s.resources[i], nil
	}
	return models.Resource{}, models.ErrNotFound
}

// DeleteResource is idempotent: deleting an absent id is a no-op.
func (s *Store) DeleteResource(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.resources {
		if s.resources[i].ID == id {
			s.resources = append(s.resources[:i], s.resources[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[strings.ToLower(email)]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return user, nil
}

func (s *Store) SaveDailyReport(_ context.Context, report models.DailyReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	report.CreatedAt = s.now()
	s.reports = append(s.reports, report)
	return nil
}

func (s *Store) ListDailyReports(_ context.Context, limit int) ([]models.DailyReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.DailyReport, len(s.reports))
	copy(out, s.reports)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
