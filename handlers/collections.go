// handlers/collections.go
package handlers

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dhazzero/ISO-Integrated-System-sub000/services"
	"github.com/dhazzero/ISO-Integrated-System-sub000/storage"
)

var (
	findingCollection    *mongo.Collection
	auditCollection      *mongo.Collection
	activityCollection   *mongo.Collection
	standardCollection   *mongo.Collection
	departmentCollection *mongo.Collection
	approverCollection   *mongo.Collection

	riskService    *services.RiskService
	findingService *services.FindingService
)

// Init wires collection handles and services once at startup. activity is
// the best-effort process-wide activity log sink.
func Init(db *mongo.Database, activity services.ActivityLogger) {
	findingCollection = db.Collection("findings")
	auditCollection = db.Collection("audits")
	activityCollection = db.Collection("activities")
	standardCollection = db.Collection("standards")
	departmentCollection = db.Collection("departments")
	approverCollection = db.Collection("approvers")

	riskService = services.NewRiskService(storage.NewMongoRiskStore(db), activity)
	findingService = services.NewFindingService(
		storage.NewMongoFindingStore(db),
		storage.NewMongoAuditStore(db),
	)
}
