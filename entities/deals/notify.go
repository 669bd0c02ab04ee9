package deals

import (
	"api/database"
	"api/entities/alerts"
	"api/schemas"
	"context"
	"fmt"
)

func notifyDealLost(agencyID, dealID string) {
	ctx, cancel := context.WithTimeout(context.Background(), database.MONGO_TIMEOUT)
	defer cancel()

	alerts.Notify(ctx, agencyID, "", schemas.ALERT_TYPE_SYSTEM,
		fmt.Sprintf("Deal %s was marked as lost", dealID))
}
