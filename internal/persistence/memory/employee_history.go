package memory

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/hilthontt/personnel/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryStore is an append-only in-memory history store. Records are copied
// on the way in and out so callers cannot alter what was stored.
type HistoryStore struct {
	mu      sync.RWMutex
	records []domain.EmployeeHistory
	index   map[primitive.ObjectID]int
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		index: make(map[primitive.ObjectID]int),
	}
}

func (s *HistoryStore) Append(ctx context.Context, history *domain.EmployeeHistory) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[history.ID]; exists {
		return domain.ErrHistoryExists
	}
	s.index[history.ID] = len(s.records)
	s.records = append(s.records, copyHistory(history))
	return nil
}

func (s *HistoryStore) ListByEmployee(ctx context.Context, employeeID primitive.ObjectID, page domain.Page) ([]domain.EmployeeHistory, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	matched := make([]domain.EmployeeHistory, 0)
	for i := range s.records {
		if s.records[i].EmployeeID == employeeID {
			matched = append(matched, copyHistory(&s.records[i]))
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b domain.EmployeeHistory) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareObjectIDs(b.ID, a.ID)
	})

	return pageOf(matched, page), int64(len(matched)), nil
}

func (s *HistoryStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.EmployeeHistory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, domain.ErrHistoryNotFound
	}
	out := copyHistory(&s.records[i])
	return &out, nil
}

func (s *HistoryStore) GetPairForEmployee(ctx context.Context, employeeID, firstID, secondID primitive.ObjectID) (*domain.EmployeeHistory, *domain.EmployeeHistory, error) {
	first, err := s.GetByID(ctx, firstID)
	if err != nil && !errors.Is(err, domain.ErrHistoryNotFound) {
		return nil, nil, err
	}
	second, err := s.GetByID(ctx, secondID)
	if err != nil && !errors.Is(err, domain.ErrHistoryNotFound) {
		return nil, nil, err
	}

	if first == nil || second == nil || first.EmployeeID != employeeID || second.EmployeeID != employeeID {
		return nil, nil, domain.ErrVersionNotFound
	}
	return first, second, nil
}

// Len reports how many records were ever appended.
func (s *HistoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func copyHistory(history *domain.EmployeeHistory) domain.EmployeeHistory {
	out := *history
	out.Changes = slices.Clone(history.Changes)
	if out.Changes == nil {
		out.Changes = []domain.FieldChange{}
	}
	out.Snapshot = history.Snapshot.Clone()
	return out
}

func compareObjectIDs(a, b primitive.ObjectID) int {
	return bytes.Compare(a[:], b[:])
}

func pageOf[T any](items []T, page domain.Page) []T {
	offset := page.Offset()
	if offset >= int64(len(items)) {
		return []T{}
	}
	end := int64(len(items))
	if page.Size > 0 && offset+page.Limit() < end {
		end = offset + page.Limit()
	}
	return items[offset:end]
}
