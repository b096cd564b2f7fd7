// Package mongodb implements the record store against the managed MongoDB
// backend.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abiwaumi/tablewater/internal/domain/models"
)

const (
	productionColl = "production"
	salesColl      = "sales"
	expensesColl   = "expenses"
	resourcesColl  = "resources"
	usersColl      = "users"
	reportsColl    = "daily_reports"
)

// Store implements repository.Store backed by MongoDB.
type Store struct {
	client *mongo.Client
	dbName string
	now    func() time.Time
}

// NewStore connects to MongoDB and verifies the connection with a ping.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, dbName: dbName, now: time.Now}, nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) coll(name string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(name)
}

// newestFirst sorts by date descending, then creation time descending so
// same-day records keep a stable order.
var newestFirst = options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})

func rangeFilter(start, end string) bson.M {
	return bson.M{"date": bson.M{"$gte": start, "$lte": end}}
}

func listInto[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

func (s *Store) ListProduction(ctx context.Context) ([]models.Production, error) {
	return listInto[models.Production](ctx, s.coll(productionColl), bson.M{}, newestFirst)
}

func (s *Store) ListProductionInRange(ctx context.Context, start, end string) ([]models.Production, error) {
	return listInto[models.Production](ctx, s.coll(productionColl), rangeFilter(start, end), newestFirst)
}

func (s *Store) CreateProduction(ctx context.Context, rec models.Production) (models.Production, error) {
	if err := rec.Validate(); err != nil {
		return models.Production{}, err
	}

	rec.ID = uuid.NewString()
	rec.CreatedAt = s.now()
	if _, err := s.coll(productionColl).InsertOne(ctx, rec); err != nil {
		return models.Production{}, fmt.Errorf("insert production record: %w", err)
	}
	return rec, nil
}

func (s *Store) ListSales(ctx context.Context) ([]models.Sale, error) {
	return listInto[models.Sale](ctx, s.coll(salesColl), bson.M{}, newestFirst)
}

func (s *Store) ListSalesInRange(ctx context.Context, start, end string) ([]models.Sale, error) {
	return listInto[models.Sale](ctx, s.coll(salesColl), rangeFilter(start, end), newestFirst)
}

// CreateSale freezes revenue at the unit price in effect now; reads never
// recompute it.
func (s *Store) CreateSale(ctx context.Context, rec models.Sale) (models.Sale, error) {
	if err := rec.Validate(); err != nil {
		return models.Sale{}, err
	}

	rec.ID = uuid.NewString()
	rec.Revenue = models.RevenueFor(rec.BagsSold)
	rec.CreatedAt = s.now()
	if _, err := s.coll(salesColl).InsertOne(ctx, rec); err != nil {
		return models.Sale{}, fmt.Errorf("insert sale record: %w", err)
	}
	return rec, nil
}

func (s *Store) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return listInto[models.Expense](ctx, s.coll(expensesColl), bson.M{}, newestFirst)
}

func (s *Store) ListExpensesInRange(ctx context.Context, start, end string) ([]models.Expense, error) {
	return listInto[models.Expense](ctx, s.coll(expensesColl), rangeFilter(start, end), newestFirst)
}

func (s *Store) CreateExpense(ctx context.Context, rec models.Expense) (models.Expense, error) {
	if err := rec.Validate(); err != nil {
		return models.Expense{}, err
	}

	rec.ID = uuid.NewString()
	rec.CreatedAt = s.now()
	if _, err := s.coll(expensesColl).InsertOne(ctx, rec); err != nil {
		return models.Expense{}, fmt.Errorf("insert expense record: %w", err)
	}
	return rec, nil
}

func (s *Store) ListResources(ctx context.Context) ([]models.Resource, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return listInto[models.Resource](ctx, s.coll(resourcesColl), bson.M{}, opts)
}

func (s *Store) CreateResource(ctx context.Context, rec models.Resource) (models.Resource, error) {
	if err := rec.Validate(); err != nil {
		return models.Resource{}, err
	}

	rec.ID = uuid.NewString()
	rec.CreatedAt = s.now()
	rec.UpdatedAt = rec.CreatedAt
	if _, err := s.coll(resourcesColl).InsertOne(ctx, rec); err != nil {
		return models.Resource{}, fmt.Errorf("insert resource: %w", err)
	}
	return rec, nil
}

func (s *Store) UpdateResource(ctx context.Context, id string, patch models.ResourcePatch) (models.Resource, error) {
	if err := patch.Validate(); err != nil {
		return models.Resource{}, err
	}

	set := bson.M{"updated_at": s.now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Quantity != nil {
		set["quantity"] = *patch.Quantity
	}
	if patch.Unit != nil {
		set["unit"] = *patch.Unit
	}
	if patch.CostPerUnit != nil {
		set["cost_per_unit"] = *patch.CostPerUnit
	}
	if patch.LastRestocked != nil {
		set["last_restocked"] = *patch.LastRestocked
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Resource
	err := s.coll(resourcesColl).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Resource{}, models.ErrNotFound
	}
	if err != nil {
		return models.Resource{}, fmt.Errorf("update resource %s: %w", id, err)
	}
	return updated, nil
}

// DeleteResource is idempotent; deleting an absent id succeeds.
func (s *Store) DeleteResource(ctx context.Context, id string) error {
	if _, err := s.coll(resourcesColl).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete resource %s: %w", id, err)
	}
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.coll(usersColl).FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, models.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

// SaveDailyReport persists an end-of-day snapshot.
func (s *Store) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	report.CreatedAt = s.now()
	if _, err := s.coll(reportsColl).InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert daily report: %w", err)
	}
	return nil
}

func (s *Store) ListDailyReports(ctx context.Context, limit int) ([]models.DailyReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	return listInto[models.DailyReport](ctx, s.coll(reportsColl), bson.M{}, opts)
}
