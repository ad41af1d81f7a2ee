package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
)

// In-memory repositories back handler and end-to-end tests. They copy values
// in and out so callers cannot mutate stored state.

type InMemoryWorkoutRepository struct {
	store map[string]domain.Workout
	mu    sync.RWMutex
}

func NewInMemoryWorkoutRepository() *InMemoryWorkoutRepository {
	return &InMemoryWorkoutRepository{store: make(map[string]domain.Workout)}
}

func (r *InMemoryWorkoutRepository) Create(ctx context.Context, w *domain.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[w.ID] = *w
	return nil
}

func (r *InMemoryWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.store[id]
	if !ok {
		return nil, domain.ErrWorkoutNotFound
	}
	return &w, nil
}

func (r *InMemoryWorkoutRepository) Update(ctx context.Context, w *domain.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.store[w.ID]
	if !ok || old.UserID != w.UserID {
		return domain.ErrWorkoutNotFound
	}
	r.store[w.ID] = *w
	return nil
}

func (r *InMemoryWorkoutRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.store[id]
	if !ok || w.UserID != userID {
		return domain.ErrWorkoutNotFound
	}
	delete(r.store, id)
	return nil
}

func (r *InMemoryWorkoutRepository) ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	workouts := []*domain.Workout{}
	for _, w := range r.store {
		if w.UserID == userID && between(w.CreatedAt, from, to) {
			w := w
			workouts = append(workouts, &w)
		}
	}

	sort.Slice(workouts, func(i, j int) bool {
		return workouts[i].CreatedAt.After(workouts[j].CreatedAt)
	})
	return workouts, nil
}

func (r *InMemoryWorkoutRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, w := range r.store {
		if w.UserID == userID {
			n++
		}
	}
	return n, nil
}

type InMemoryMealRepository struct {
	store map[string]domain.Meal
	mu    sync.RWMutex
}

func NewInMemoryMealRepository() *InMemoryMealRepository {
	return &InMemoryMealRepository{store: make(map[string]domain.Meal)}
}

func (r *InMemoryMealRepository) Create(ctx context.Context, m *domain.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[m.ID] = *m
	return nil
}

func (r *InMemoryMealRepository) GetByID(ctx context.Context, id string) (*domain.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.store[id]
	if !ok {
		return nil, domain.ErrMealNotFound
	}
	return &m, nil
}

func (r *InMemoryMealRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.store[id]
	if !ok || m.UserID != userID {
		return domain.ErrMealNotFound
	}
	delete(r.store, id)
	return nil
}

func (r *InMemoryMealRepository) ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meals := []*domain.Meal{}
	for _, m := range r.store {
		if m.UserID == userID && between(m.CreatedAt, from, to) {
			m := m
			meals = append(meals, &m)
		}
	}

	sort.Slice(meals, func(i, j int) bool {
		return meals[i].CreatedAt.After(meals[j].CreatedAt)
	})
	return meals, nil
}

type InMemoryMeasurementRepository struct {
	store []domain.Measurement
	mu    sync.RWMutex
}

func NewInMemoryMeasurementRepository() *InMemoryMeasurementRepository {
	return &InMemoryMeasurementRepository{}
}

func (r *InMemoryMeasurementRepository) Create(ctx context.Context, m *domain.Measurement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store = append(r.store, *m)
	return nil
}

func (r *InMemoryMeasurementRepository) ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.Measurement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []*domain.Measurement{}
	for _, m := range r.store {
		if m.UserID == userID && between(m.MeasuredAt, from, to) {
			m := m
			list = append(list, &m)
		}
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].MeasuredAt.Before(list[j].MeasuredAt)
	})
	return list, nil
}

type InMemoryProfileRepository struct {
	profiles map[string]domain.Profile
	goals    map[string][]domain.Goal
	mu       sync.RWMutex
}

func NewInMemoryProfileRepository() *InMemoryProfileRepository {
	return &InMemoryProfileRepository{
		profiles: make(map[string]domain.Profile),
		goals:    make(map[string][]domain.Goal),
	}
}

func (r *InMemoryProfileRepository) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

func (r *InMemoryProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := *p
	if old, ok := r.profiles[p.UserID]; ok && old.LongestStreak > next.LongestStreak {
		next.LongestStreak = old.LongestStreak
	}
	r.profiles[p.UserID] = next
	return nil
}

func (r *InMemoryProfileRepository) UpdateLongestStreak(ctx context.Context, userID string, longest int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[userID]
	if ok && longest > p.LongestStreak {
		p.LongestStreak = longest
		p.UpdatedAt = time.Now().UTC()
		r.profiles[userID] = p
	}
	return nil
}

func (r *InMemoryProfileRepository) ActiveGoal(ctx context.Context, userID string) (*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.goals[userID] {
		if g.Active {
			g := g
			return &g, nil
		}
	}
	return nil, domain.ErrGoalNotFound
}

func (r *InMemoryProfileRepository) SetGoal(ctx context.Context, g *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	goals := r.goals[g.UserID]
	for i := range goals {
		goals[i].Active = false
	}
	r.goals[g.UserID] = append(goals, *g)
	return nil
}

type InMemoryUserRepository struct {
	byID map[string]domain.User
	mu   sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{byID: make(map[string]domain.User)}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.byID[u.ID] = *u
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *InMemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func between(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
