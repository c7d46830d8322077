// Package testutil provides in-memory doubles for service and handler tests.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/repositories"
)

type memState struct {
	users     map[uint]models.User
	students  map[uint]models.Student // keyed by user id
	doubts    map[uint]models.Doubt
	messages  map[uint]models.DoubtMessage
	summaries map[uint]models.CareerSummary
	nextID    uint
}

func (s *memState) clone() *memState {
	out := &memState{
		users:     make(map[uint]models.User, len(s.users)),
		students:  make(map[uint]models.Student, len(s.students)),
		doubts:    make(map[uint]models.Doubt, len(s.doubts)),
		messages:  make(map[uint]models.DoubtMessage, len(s.messages)),
		summaries: make(map[uint]models.CareerSummary, len(s.summaries)),
		nextID:    s.nextID,
	}
	for k, v := range s.users {
		out.users[k] = v
	}
	for k, v := range s.students {
		out.students[k] = v
	}
	for k, v := range s.doubts {
		out.doubts[k] = v
	}
	for k, v := range s.messages {
		out.messages[k] = v
	}
	for k, v := range s.summaries {
		out.summaries[k] = v
	}
	return out
}

// MemoryRepository implements repositories.Repository on maps. Transactions
// are serialized and roll back by restoring a snapshot.
type MemoryRepository struct {
	mu    *sync.Mutex
	txMu  *sync.Mutex
	state **memState
	clock func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	state := &memState{
		users:     map[uint]models.User{},
		students:  map[uint]models.Student{},
		doubts:    map[uint]models.Doubt{},
		messages:  map[uint]models.DoubtMessage{},
		summaries: map[uint]models.CareerSummary{},
	}
	return &MemoryRepository{
		mu:    &sync.Mutex{},
		txMu:  &sync.Mutex{},
		state: &state,
		clock: steppingClock(),
	}
}

// steppingClock advances one second per call so orderings are deterministic.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func (r *MemoryRepository) User() repositories.UserRepository                   { return memUsers{r} }
func (r *MemoryRepository) Student() repositories.StudentRepository             { return memStudents{r} }
func (r *MemoryRepository) Doubt() repositories.DoubtRepository                 { return memDoubts{r} }
func (r *MemoryRepository) DoubtMessage() repositories.DoubtMessageRepository   { return memMessages{r} }
func (r *MemoryRepository) CareerSummary() repositories.CareerSummaryRepository { return memSummaries{r} }

func (r *MemoryRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	snapshot := (*r.state).clone()
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		*r.state = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *MemoryRepository) Ping(context.Context) error { return nil }
func (r *MemoryRepository) Close() error               { return nil }

// MessageCount returns how many thread messages are stored, across all doubts.
func (r *MemoryRepository) MessageCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len((*r.state).messages)
}

func (r *MemoryRepository) SummaryCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len((*r.state).summaries)
}

func (r *MemoryRepository) with(fn func(s *memState) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(*r.state)
}

func (r *MemoryRepository) newID(s *memState) uint {
	s.nextID++
	return s.nextID
}

func notFound(op string) error {
	return fmt.Errorf("%s failed: %w", op, gorm.ErrRecordNotFound)
}

func duplicate(op string) error {
	return fmt.Errorf("%s failed: %w", op, gorm.ErrDuplicatedKey)
}

type memUsers struct{ r *MemoryRepository }

func (m memUsers) Create(_ context.Context, user *models.User) error {
	return m.r.with(func(s *memState) error {
		for _, u := range s.users {
			if u.Email == user.Email {
				return duplicate("create user")
			}
		}
		user.ID = m.r.newID(s)
		user.CreatedAt = m.r.clock()
		s.users[user.ID] = *user
		return nil
	})
}

func (m memUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	var out *models.User
	err := m.r.with(func(s *memState) error {
		u, ok := s.users[id]
		if !ok {
			return notFound("get user")
		}
		out = &u
		return nil
	})
	return out, err
}

func (m memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	var out *models.User
	err := m.r.with(func(s *memState) error {
		for _, u := range s.users {
			if u.Email == email {
				out = &u
				return nil
			}
		}
		return notFound("get user by email")
	})
	return out, err
}

func (m memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

type memStudents struct{ r *MemoryRepository }

func (m memStudents) Create(_ context.Context, student *models.Student) error {
	return m.r.with(func(s *memState) error {
		if _, ok := s.users[student.UserID]; !ok {
			return fmt.Errorf("create student failed: %w", gorm.ErrForeignKeyViolated)
		}
		if _, ok := s.students[student.UserID]; ok {
			return duplicate("create student")
		}
		now := m.r.clock()
		student.ID = m.r.newID(s)
		student.CreatedAt = now
		student.UpdatedAt = now
		s.students[student.UserID] = *student
		return nil
	})
}

func (m memStudents) GetByUserID(_ context.Context, userID uint) (*models.Student, error) {
	var out *models.Student
	err := m.r.with(func(s *memState) error {
		st, ok := s.students[userID]
		if !ok {
			return notFound("get student")
		}
		out = &st
		return nil
	})
	return out, err
}

func (m memStudents) GetProfile(_ context.Context, userID uint) (*models.StudentProfile, error) {
	var out *models.StudentProfile
	err := m.r.with(func(s *memState) error {
		st, ok := s.students[userID]
		if !ok {
			return notFound("get student profile")
		}
		out = &models.StudentProfile{Student: st, AccountEmail: s.users[userID].Email}
		return nil
	})
	return out, err
}

func (m memStudents) ExistsByUserID(_ context.Context, userID uint) (bool, error) {
	var exists bool
	err := m.r.with(func(s *memState) error {
		_, exists = s.students[userID]
		return nil
	})
	return exists, err
}

func (m memStudents) Update(_ context.Context, student *models.Student) error {
	return m.r.with(func(s *memState) error {
		if _, ok := s.students[student.UserID]; !ok {
			return notFound("update student")
		}
		student.UpdatedAt = m.r.clock()
		s.students[student.UserID] = *student
		return nil
	})
}

func (m memStudents) DeleteByUserID(_ context.Context, userID uint) error {
	return m.r.with(func(s *memState) error {
		if _, ok := s.students[userID]; !ok {
			return notFound("delete student")
		}
		delete(s.students, userID)
		return nil
	})
}

type memDoubts struct{ r *MemoryRepository }

func (m memDoubts) Create(_ context.Context, doubt *models.Doubt) error {
	return m.r.with(func(s *memState) error {
		if _, ok := s.users[doubt.UserID]; !ok {
			return fmt.Errorf("create doubt failed: %w", gorm.ErrForeignKeyViolated)
		}
		if doubt.Status == "" {
			doubt.Status = models.DoubtOpen
		}
		now := m.r.clock()
		doubt.ID = m.r.newID(s)
		doubt.CreatedAt = now
		doubt.UpdatedAt = now
		s.doubts[doubt.ID] = *doubt
		return nil
	})
}

func (m memDoubts) GetByID(_ context.Context, id uint) (*models.Doubt, error) {
	var out *models.Doubt
	err := m.r.with(func(s *memState) error {
		d, ok := s.doubts[id]
		if !ok {
			return notFound("get doubt")
		}
		out = &d
		return nil
	})
	return out, err
}

func (m memDoubts) ListByUser(_ context.Context, userID uint, filters repositories.DoubtFilters) ([]*models.Doubt, error) {
	var out []*models.Doubt
	err := m.r.with(func(s *memState) error {
		for _, d := range s.doubts {
			if d.UserID != userID {
				continue
			}
			if filters.Status != nil && d.Status != *filters.Status {
				continue
			}
			d := d
			out = append(out, &d)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, err
}

func (m memDoubts) Resolve(_ context.Context, id uint, notes *string) error {
	return m.r.with(func(s *memState) error {
		d, ok := s.doubts[id]
		if !ok {
			return notFound("resolve doubt")
		}
		d.Status = models.DoubtResolved
		d.ResolutionNotes = notes
		d.UpdatedAt = m.r.clock()
		s.doubts[id] = d
		return nil
	})
}

func (m memDoubts) Touch(_ context.Context, id uint) error {
	return m.r.with(func(s *memState) error {
		d, ok := s.doubts[id]
		if !ok {
			return nil
		}
		d.UpdatedAt = m.r.clock()
		s.doubts[id] = d
		return nil
	})
}

type memMessages struct{ r *MemoryRepository }

func (m memMessages) Create(_ context.Context, message *models.DoubtMessage) error {
	return m.r.with(func(s *memState) error {
		if _, ok := s.doubts[message.DoubtID]; !ok {
			return fmt.Errorf("create doubt message failed: %w", gorm.ErrForeignKeyViolated)
		}
		message.ID = m.r.newID(s)
		message.CreatedAt = m.r.clock()
		s.messages[message.ID] = *message
		return nil
	})
}

func (m memMessages) ListByDoubt(_ context.Context, doubtID uint) ([]*models.DoubtMessage, error) {
	return m.collect(func(msg models.DoubtMessage) bool { return msg.DoubtID == doubtID })
}

func (m memMessages) ListRecent(ctx context.Context, doubtID uint, limit int) ([]*models.DoubtMessage, error) {
	all, err := m.ListByDoubt(ctx, doubtID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (m memMessages) ListByDoubts(_ context.Context, doubtIDs []uint) ([]*models.DoubtMessage, error) {
	out, err := m.collect(func(msg models.DoubtMessage) bool { return slices.Contains(doubtIDs, msg.DoubtID) })
	sort.SliceStable(out, func(i, j int) bool { return out[i].DoubtID < out[j].DoubtID })
	return out, err
}

func (m memMessages) collect(match func(models.DoubtMessage) bool) ([]*models.DoubtMessage, error) {
	var out []*models.DoubtMessage
	err := m.r.with(func(s *memState) error {
		for _, msg := range s.messages {
			if match(msg) {
				msg := msg
				out = append(out, &msg)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

type memSummaries struct{ r *MemoryRepository }

func (m memSummaries) Create(_ context.Context, summary *models.CareerSummary) error {
	return m.r.with(func(s *memState) error {
		summary.ID = m.r.newID(s)
		summary.CreatedAt = m.r.clock()
		s.summaries[summary.ID] = *summary
		return nil
	})
}

func (m memSummaries) ListByUser(_ context.Context, userID uint, limit int) ([]*models.CareerSummary, error) {
	var out []*models.CareerSummary
	err := m.r.with(func(s *memState) error {
		for _, cs := range s.summaries {
			if cs.UserID == userID {
				cs := cs
				out = append(out, &cs)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}
