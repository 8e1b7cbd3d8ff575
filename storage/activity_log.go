// storage/activity_log.go
package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dhazzero/ISO-Integrated-System-sub000/domain"
	"github.com/dhazzero/ISO-Integrated-System-sub000/models"
)

// MongoActivityLog implements services.ActivityLogger: an append-only
// collection plus an optional live broadcast hook.
type MongoActivityLog struct {
	col       *mongo.Collection
	broadcast func(models.ActivityEntry)
}

// NewMongoActivityLog wires the log to its collection. broadcast may be
// nil; when set it is invoked after a successful insert (the websocket
// feed in production).
func NewMongoActivityLog(db *mongo.Database, broadcast func(models.ActivityEntry)) *MongoActivityLog {
	return &MongoActivityLog{col: db.Collection("activities"), broadcast: broadcast}
}

func (l *MongoActivityLog) Record(ctx context.Context, entry models.ActivityEntry) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if _, err := l.col.InsertOne(ctx, entry); err != nil {
		return &domain.PersistenceError{Op: "insert activity", Err: err}
	}
	if l.broadcast != nil {
		l.broadcast(entry)
	}
	return nil
}
