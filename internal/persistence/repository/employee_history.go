package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hilthontt/personnel/internal/domain"
	"github.com/hilthontt/personnel/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// historySort orders a trail newest first. Records sharing a millisecond fall
// back to their ids, which also grow over time.
var historySort = bson.D{
	{Key: "created_at", Value: -1},
	{Key: "_id", Value: -1},
}

// EmployeeHistoryRepository stores the audit trail. It only ever inserts.
type EmployeeHistoryRepository struct {
	db *mongo.Database
}

func NewEmployeeHistoryRepository(db *mongo.Database) *EmployeeHistoryRepository {
	return &EmployeeHistoryRepository{
		db: db,
	}
}

func (r *EmployeeHistoryRepository) collection() *mongo.Collection {
	return r.db.Collection(db.EmployeeHistoriesCollection)
}

func (r *EmployeeHistoryRepository) Append(ctx context.Context, history *domain.EmployeeHistory) error {
	if _, err := r.collection().InsertOne(ctx, history); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", domain.ErrHistoryExists, history.ID.Hex())
		}
		return fmt.Errorf("insert history %s: %w", history.ID.Hex(), err)
	}
	return nil
}

func (r *EmployeeHistoryRepository) ListByEmployee(ctx context.Context, employeeID primitive.ObjectID, page domain.Page) ([]domain.EmployeeHistory, int64, error) {
	filter := bson.M{"employee_id": employeeID}

	total, err := r.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}

	histories := make([]domain.EmployeeHistory, 0)
	if page.Offset() >= total {
		return histories, total, nil
	}

	opts := options.Find().
		SetSort(historySort).
		SetSkip(page.Offset()).
		SetLimit(page.Limit())

	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find history: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &histories); err != nil {
		return nil, 0, fmt.Errorf("decode history: %w", err)
	}

	return histories, total, nil
}

func (r *EmployeeHistoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.EmployeeHistory, error) {
	var history domain.EmployeeHistory
	if err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&history); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHistoryNotFound
		}
		return nil, fmt.Errorf("find history %s: %w", id.Hex(), err)
	}
	return &history, nil
}

// GetPairForEmployee loads both records in one query. Either one missing, or
// recorded for another employee, fails the whole lookup.
func (r *EmployeeHistoryRepository) GetPairForEmployee(ctx context.Context, employeeID, firstID, secondID primitive.ObjectID) (*domain.EmployeeHistory, *domain.EmployeeHistory, error) {
	filter := bson.M{
		"employee_id": employeeID,
		"_id":         bson.M{"$in": bson.A{firstID, secondID}},
	}

	cursor, err := r.collection().Find(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("find history pair: %w", err)
	}
	defer cursor.Close(ctx)

	var found []domain.EmployeeHistory
	if err := cursor.All(ctx, &found); err != nil {
		return nil, nil, fmt.Errorf("decode history pair: %w", err)
	}

	byID := make(map[primitive.ObjectID]*domain.EmployeeHistory, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	first, second := byID[firstID], byID[secondID]
	if first == nil || second == nil {
		return nil, nil, domain.ErrVersionNotFound
	}
	return first, second, nil
}

func (r *EmployeeHistoryRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "employee_id", Value: 1},
				{Key: "created_at", Value: -1},
				{Key: "_id", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "operation", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
	}

	_, err := r.collection().Indexes().CreateMany(ctx, indexes)
	return err
}
