// storage/risk_store.go
package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dhazzero/ISO-Integrated-System-sub000/domain"
	"github.com/dhazzero/ISO-Integrated-System-sub000/models"
	"github.com/dhazzero/ISO-Integrated-System-sub000/services"
)

// MongoRiskStore implements services.RiskStore on a mongo collection.
type MongoRiskStore struct {
	col *mongo.Collection
}

func NewMongoRiskStore(db *mongo.Database) *MongoRiskStore {
	return &MongoRiskStore{col: db.Collection("risks")}
}

func (s *MongoRiskStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Risk, error) {
	var risk models.Risk
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&risk)
	if err == mongo.ErrNoDocuments {
		return nil, &domain.NotFoundError{Resource: "risk", ID: id.Hex()}
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "find risk", Err: err}
	}
	return &risk, nil
}

func (s *MongoRiskStore) Insert(ctx context.Context, risk *models.Risk) error {
	if _, err := s.col.InsertOne(ctx, risk); err != nil {
		return &domain.PersistenceError{Op: "insert risk", Err: err}
	}
	return nil
}

// Replace writes the full candidate document, guarded by the revision the
// caller read. A zero match with the document still present means another
// write won the race.
func (s *MongoRiskStore) Replace(ctx context.Context, risk *models.Risk, expectedRevision int64) error {
	filter := bson.M{"_id": risk.ID, "revision": expectedRevision}
	result, err := s.col.ReplaceOne(ctx, filter, risk)
	if err != nil {
		return &domain.PersistenceError{Op: "replace risk", Err: err}
	}
	if result.MatchedCount == 0 {
		count, err := s.col.CountDocuments(ctx, bson.M{"_id": risk.ID})
		if err != nil {
			return &domain.PersistenceError{Op: "replace risk", Err: err}
		}
		if count == 0 {
			return &domain.NotFoundError{Resource: "risk", ID: risk.ID.Hex()}
		}
		return &domain.ConflictError{Resource: "risk", ID: risk.ID.Hex()}
	}
	return nil
}

func (s *MongoRiskStore) List(ctx context.Context, filter services.RiskFilter) ([]models.Risk, error) {
	query := bson.M{}
	if !filter.IncludeArchived {
		query["deleted"] = bson.M{"$ne": true}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list risks", Err: err}
	}
	defer cursor.Close(ctx)

	var risks []models.Risk
	if err := cursor.All(ctx, &risks); err != nil {
		return nil, &domain.PersistenceError{Op: "decode risks", Err: err}
	}
	if risks == nil {
		risks = []models.Risk{}
	}
	return risks, nil
}
