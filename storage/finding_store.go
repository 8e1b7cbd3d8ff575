// storage/finding_store.go
package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dhazzero/ISO-Integrated-System-sub000/domain"
	"github.com/dhazzero/ISO-Integrated-System-sub000/models"
)

// MongoFindingStore implements services.FindingStore.
type MongoFindingStore struct {
	col *mongo.Collection
}

func NewMongoFindingStore(db *mongo.Database) *MongoFindingStore {
	return &MongoFindingStore{col: db.Collection("findings")}
}

func (s *MongoFindingStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Finding, error) {
	var finding models.Finding
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&finding)
	if err == mongo.ErrNoDocuments {
		return nil, &domain.NotFoundError{Resource: "finding", ID: id.Hex()}
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "find finding", Err: err}
	}
	return &finding, nil
}

func (s *MongoFindingStore) Replace(ctx context.Context, finding *models.Finding) error {
	result, err := s.col.ReplaceOne(ctx, bson.M{"_id": finding.ID}, finding)
	if err != nil {
		return &domain.PersistenceError{Op: "replace finding", Err: err}
	}
	if result.MatchedCount == 0 {
		return &domain.NotFoundError{Resource: "finding", ID: finding.ID.Hex()}
	}
	return nil
}

func (s *MongoFindingStore) CountOpenByAudit(ctx context.Context, auditID primitive.ObjectID) (int64, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{
		"auditId": auditID,
		"status":  bson.M{"$in": []string{models.FindingStatusOpen, models.FindingStatusInProgress}},
	})
	if err != nil {
		return 0, &domain.PersistenceError{Op: "count open findings", Err: err}
	}
	return count, nil
}
