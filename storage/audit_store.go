// storage/audit_store.go
package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dhazzero/ISO-Integrated-System-sub000/domain"
	"github.com/dhazzero/ISO-Integrated-System-sub000/models"
)

// MongoAuditStore implements services.AuditStore.
type MongoAuditStore struct {
	col *mongo.Collection
}

func NewMongoAuditStore(db *mongo.Database) *MongoAuditStore {
	return &MongoAuditStore{col: db.Collection("audits")}
}

// Complete sets the audit to Completed with the given timestamp. The
// filter excludes already-Completed audits so a retried promotion is a
// no-op rather than a second write.
func (s *MongoAuditStore) Complete(ctx context.Context, id primitive.ObjectID, completedAt time.Time) error {
	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": models.AuditStatusCompleted}},
		bson.M{"$set": bson.M{
			"status":        models.AuditStatusCompleted,
			"completedDate": completedAt,
			"updatedAt":     completedAt,
		}},
	)
	if err != nil {
		return &domain.PersistenceError{Op: "complete audit", Err: err}
	}
	if result.MatchedCount == 0 {
		count, err := s.col.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return &domain.PersistenceError{Op: "complete audit", Err: err}
		}
		if count == 0 {
			return &domain.NotFoundError{Resource: "audit", ID: id.Hex()}
		}
		// Already Completed; converged.
	}
	return nil
}
