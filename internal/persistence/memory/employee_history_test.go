package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hilthontt/personnel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newHistory(employeeID primitive.ObjectID, op domain.Operation, at time.Time) *domain.EmployeeHistory {
	return &domain.EmployeeHistory{
		ID:         primitive.NewObjectID(),
		EmployeeID: employeeID,
		Operation:  op,
		Changes:    []domain.FieldChange{},
		Snapshot:   domain.Snapshot{domain.FieldFullName: "Jane Doe"},
		ChangedBy:  "system",
		CreatedAt:  at,
	}
}

func TestHistoryStoreAppend(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()
	record := newHistory(primitive.NewObjectID(), domain.OperationCreate, baseTime)

	require.NoError(t, store.Append(ctx, record))
	assert.ErrorIs(t, store.Append(ctx, record), domain.ErrHistoryExists)
	assert.Equal(t, 1, store.Len())

	t.Run("stored copy is isolated from the caller", func(t *testing.T) {
		record.Snapshot[domain.FieldFullName] = "Changed"

		got, err := store.GetByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", got.Snapshot[domain.FieldFullName])

		got.Snapshot[domain.FieldFullName] = "Changed again"
		again, err := store.GetByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", again.Snapshot[domain.FieldFullName])
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, store.Append(cancelled, newHistory(primitive.NewObjectID(), domain.OperationCreate, baseTime)), context.Canceled)
	})
}

func TestHistoryStoreListByEmployee(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()
	employeeID := primitive.NewObjectID()

	created := newHistory(employeeID, domain.OperationCreate, baseTime)
	updated := newHistory(employeeID, domain.OperationUpdate, baseTime.Add(time.Minute))
	deleted := newHistory(employeeID, domain.OperationDelete, baseTime.Add(2*time.Minute))
	other := newHistory(primitive.NewObjectID(), domain.OperationCreate, baseTime.Add(time.Hour))

	for _, h := range []*domain.EmployeeHistory{updated, other, created, deleted} {
		require.NoError(t, store.Append(ctx, h))
	}

	t.Run("newest first", func(t *testing.T) {
		records, total, err := store.ListByEmployee(ctx, employeeID, domain.Page{Number: 1, Size: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, records, 3)
		assert.Equal(t, []primitive.ObjectID{deleted.ID, updated.ID, created.ID},
			[]primitive.ObjectID{records[0].ID, records[1].ID, records[2].ID})
	})

	t.Run("pages", func(t *testing.T) {
		records, total, err := store.ListByEmployee(ctx, employeeID, domain.Page{Number: 2, Size: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, records, 1)
		assert.Equal(t, created.ID, records[0].ID)
	})

	t.Run("page past the end is empty with total", func(t *testing.T) {
		records, total, err := store.ListByEmployee(ctx, employeeID, domain.Page{Number: 5, Size: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("huge page number is empty with total", func(t *testing.T) {
		records, total, err := store.ListByEmployee(ctx, employeeID, domain.Page{Number: 100000000000000000, Size: 100})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Empty(t, records)
	})

	t.Run("unknown employee is empty", func(t *testing.T) {
		records, total, err := store.ListByEmployee(ctx, primitive.NewObjectID(), domain.Page{Number: 1, Size: 20})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, records)
	})
}

func TestHistoryStoreOrdersTiesByID(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()
	employeeID := primitive.NewObjectID()

	first := newHistory(employeeID, domain.OperationCreate, baseTime)
	second := newHistory(employeeID, domain.OperationUpdate, baseTime)
	require.NoError(t, store.Append(ctx, second))
	require.NoError(t, store.Append(ctx, first))

	records, _, err := store.ListByEmployee(ctx, employeeID, domain.Page{Number: 1, Size: 20})
	require.NoError(t, err)
	require.Len(t, records, 2)
	// ObjectIDs increase with creation, so the later id wins the tie.
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, first.ID, records[1].ID)
}

func TestHistoryStoreGetPairForEmployee(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()
	employeeID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	v1 := newHistory(employeeID, domain.OperationCreate, baseTime)
	v2 := newHistory(employeeID, domain.OperationUpdate, baseTime.Add(time.Minute))
	foreign := newHistory(otherID, domain.OperationCreate, baseTime)
	for _, h := range []*domain.EmployeeHistory{v1, v2, foreign} {
		require.NoError(t, store.Append(ctx, h))
	}

	first, second, err := store.GetPairForEmployee(ctx, employeeID, v2.ID, v1.ID)
	require.NoError(t, err)
	assert.Equal(t, v2.ID, first.ID)
	assert.Equal(t, v1.ID, second.ID)

	same1, same2, err := store.GetPairForEmployee(ctx, employeeID, v1.ID, v1.ID)
	require.NoError(t, err)
	assert.Equal(t, same1.ID, same2.ID)

	_, _, err = store.GetPairForEmployee(ctx, employeeID, v1.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, domain.ErrVersionNotFound)

	_, _, err = store.GetPairForEmployee(ctx, employeeID, v1.ID, foreign.ID)
	assert.ErrorIs(t, err, domain.ErrVersionNotFound)

	_, _, err = store.GetPairForEmployee(ctx, otherID, v1.ID, v2.ID)
	assert.ErrorIs(t, err, domain.ErrVersionNotFound)
}

func TestHistoryStoreConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()
	employeeID := primitive.NewObjectID()

	const writers = 50
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := newHistory(employeeID, domain.OperationUpdate, baseTime.Add(time.Duration(i)*time.Millisecond))
			h.ChangeReason = fmt.Sprintf("update %d", i)
			assert.NoError(t, store.Append(ctx, h))
		}()
	}
	wg.Wait()

	_, total, err := store.ListByEmployee(ctx, employeeID, domain.Page{Number: 1, Size: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(writers), total)
}

func TestHistoryStorePagesCoverTotal(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()
	employeeID := primitive.NewObjectID()

	const written = 23
	for i := range written {
		require.NoError(t, store.Append(ctx, newHistory(employeeID, domain.OperationUpdate, baseTime.Add(time.Duration(i)*time.Minute))))
	}

	for _, size := range []int{1, 2, 5, 7, 20, 23, 100} {
		t.Run(fmt.Sprintf("size %d", size), func(t *testing.T) {
			seen := make(map[primitive.ObjectID]bool, written)
			sum := 0
			var previous time.Time

			for number := 1; ; number++ {
				records, total, err := store.ListByEmployee(ctx, employeeID, domain.Page{Number: number, Size: size})
				require.NoError(t, err)
				require.Equal(t, int64(written), total)
				if len(records) == 0 {
					assert.Equal(t, domain.TotalPages(total, size)+1, number, "first empty page follows the last one")
					break
				}
				assert.LessOrEqual(t, len(records), size)

				for _, record := range records {
					assert.False(t, seen[record.ID], "record %s repeated", record.ID.Hex())
					seen[record.ID] = true
					if !previous.IsZero() {
						assert.False(t, record.CreatedAt.After(previous), "newest first across pages")
					}
					previous = record.CreatedAt
				}
				sum += len(records)
			}

			assert.Equal(t, written, sum)
		})
	}
}
