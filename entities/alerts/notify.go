package alerts

import (
	"api/database"
	"api/schemas"
	"api/utils"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// Notify persists an alert and pushes it to connected sessions. agentID ""
// broadcasts to the whole agency. Failures are logged and swallowed;
// notifications never fail the flow that raised them.
func Notify(ctx context.Context, agencyID, agentID, alertType, message string) {
	alert := &schemas.Alert{
		AgencyID:  agencyID,
		AgentID:   agentID,
		Type:      alertType,
		Message:   message,
		CreatedAt: time.Now(),
	}

	collection, err := database.Collection(database.COLLECTION_ALERTS)
	if err != nil {
		utils.Log.Warn("alert not persisted", zap.Error(err))
		return
	}

	result, err := collection.InsertOne(ctx, alert)
	if err != nil {
		utils.Log.Warn("alert not persisted", zap.Error(err))
		return
	}

	if id, ok := result.InsertedID.(bson.ObjectID); ok {
		alert.ID = id
	}
	broadcastAlert(agencyID, *alert)
}
