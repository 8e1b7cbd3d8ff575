// handlers/activity_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dhazzero/ISO-Integrated-System-sub000/models"
	"github.com/dhazzero/ISO-Integrated-System-sub000/utils"
	"github.com/dhazzero/ISO-Integrated-System-sub000/websocket"
)

// ListActivities returns the most recent activity log entries, newest
// first.
func ListActivities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	limit := int64(100)
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.ParseInt(limitStr, 10, 64); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	filter := bson.M{}
	if module := r.URL.Query().Get("module"); module != "" {
		filter["module"] = module
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := activityCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("activities Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Terjadi kesalahan pada server", err)
		return
	}
	defer cursor.Close(ctx)

	var activities []models.ActivityEntry
	if err = cursor.All(ctx, &activities); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Terjadi kesalahan pada server", err)
		return
	}
	if activities == nil {
		activities = []models.ActivityEntry{}
	}

	utils.RespondWithJSON(w, http.StatusOK, activities)
}

// ActivityFeed upgrades to a WebSocket carrying live activity entries.
func ActivityFeed(w http.ResponseWriter, r *http.Request) {
	websocket.ServeActivityFeed(w, r)
}
