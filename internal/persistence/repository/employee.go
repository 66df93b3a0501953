package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hilthontt/personnel/internal/domain"
	"github.com/hilthontt/personnel/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultEmployeeSort = "created_at"

type EmployeeRepository struct {
	db *mongo.Database
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{
		db: db,
	}
}

func (r *EmployeeRepository) collection() *mongo.Collection {
	return r.db.Collection(db.EmployeesCollection)
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	if _, err := r.collection().InsertOne(ctx, employee); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", domain.ErrDuplicateEmployee, err)
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Employee, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *EmployeeRepository) FindActiveByID(ctx context.Context, id primitive.ObjectID) (*domain.Employee, error) {
	return r.findOne(ctx, bson.M{"_id": id, "is_deleted": false})
}

func (r *EmployeeRepository) findOne(ctx context.Context, filter bson.M) (*domain.Employee, error) {
	var employee domain.Employee
	if err := r.collection().FindOne(ctx, filter).Decode(&employee); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return &employee, nil
}

// Save replaces the stored document of an active employee.
func (r *EmployeeRepository) Save(ctx context.Context, employee *domain.Employee) error {
	res, err := r.collection().ReplaceOne(ctx, bson.M{"_id": employee.ID, "is_deleted": false}, employee)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", domain.ErrDuplicateEmployee, err)
		}
		return fmt.Errorf("replace employee %s: %w", employee.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) SoftDelete(ctx context.Context, employee *domain.Employee) error {
	update := bson.M{
		"$set": bson.M{
			"is_deleted":        true,
			"deleted_at":        employee.DeletedAt,
			"employment_status": employee.EmploymentStatus,
			"updated_at":        employee.UpdatedAt,
		},
	}

	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": employee.ID, "is_deleted": false}, update)
	if err != nil {
		return fmt.Errorf("soft delete employee %s: %w", employee.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, int64, error) {
	query := bson.M{"is_deleted": false}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"full_name": pattern},
			bson.M{"email": pattern},
			bson.M{"employee_id": pattern},
			bson.M{"designation": pattern},
		}
	}
	if filter.Department != "" {
		query["department"] = filter.Department
	}
	if filter.EmploymentStatus != "" {
		query["employment_status"] = filter.EmploymentStatus
	}

	total, err := r.collection().CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}
	if filter.Page.Offset() >= total {
		return []domain.Employee{}, total, nil
	}

	sortField, ok := domain.SortableFields[filter.SortBy]
	if !ok {
		sortField = defaultEmployeeSort
	}
	direction := 1
	if filter.SortDescending {
		direction = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: direction}, {Key: "_id", Value: direction}}).
		SetSkip(filter.Page.Offset()).
		SetLimit(filter.Page.Limit())

	cursor, err := r.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find employees: %w", err)
	}
	defer cursor.Close(ctx)

	employees := make([]domain.Employee, 0)
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, 0, fmt.Errorf("decode employees: %w", err)
	}

	return employees, total, nil
}

func (r *EmployeeRepository) Stats(ctx context.Context) (*domain.EmployeeStats, error) {
	coll := r.collection()

	active, err := coll.CountDocuments(ctx, bson.M{"is_deleted": false, "employment_status": domain.StatusActive})
	if err != nil {
		return nil, fmt.Errorf("count active employees: %w", err)
	}
	inactive, err := coll.CountDocuments(ctx, bson.M{"is_deleted": false, "employment_status": domain.StatusInactive})
	if err != nil {
		return nil, fmt.Errorf("count inactive employees: %w", err)
	}
	deleted, err := coll.CountDocuments(ctx, bson.M{"is_deleted": true})
	if err != nil {
		return nil, fmt.Errorf("count deleted employees: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_deleted": false}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$department",
			"count":      bson.M{"$sum": 1},
			"avg_salary": bson.M{"$avg": "$salary"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate department stats: %w", err)
	}
	defer cursor.Close(ctx)

	departments := make([]domain.DepartmentStat, 0)
	if err := cursor.All(ctx, &departments); err != nil {
		return nil, fmt.Errorf("decode department stats: %w", err)
	}

	return &domain.EmployeeStats{
		TotalActive:     active,
		TotalInactive:   inactive,
		TotalDeleted:    deleted,
		TotalEmployees:  active + inactive,
		DepartmentStats: departments,
	}, nil
}

func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phone_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "is_deleted", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "department", Value: 1}},
		},
	}

	_, err := r.collection().Indexes().CreateMany(ctx, indexes)
	return err
}
