package deals

import (
	"api/database"
	"api/kanban"
	"api/schemas"
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// One board per agency, shared by the stage handlers and the websocket
// feed.
var (
	boards      = map[string]*kanban.Board{}
	boardsMutex sync.Mutex
)

func boardFor(agencyID string) *kanban.Board {
	boardsMutex.Lock()
	defer boardsMutex.Unlock()

	board, ok := boards[agencyID]
	if !ok {
		board = kanban.NewBoard()
		boards[agencyID] = board
	}
	return board
}

func fetchDeals(ctx context.Context, agencyID string) ([]schemas.Deal, error) {
	collection, err := database.Collection(database.COLLECTION_DEALS)
	if err != nil {
		return nil, err
	}

	filter := bson.D{{Key: "agency_id", Value: agencyID}}
	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	deals := []schemas.Deal{}
	if err := cursor.All(ctx, &deals); err != nil {
		return nil, err
	}
	return deals, nil
}

// refreshBoard feeds a fresh store snapshot into the agency board and
// pushes the resulting columns to every websocket subscriber.
func refreshBoard(ctx context.Context, agencyID string) {
	deals, err := fetchDeals(ctx, agencyID)
	if err != nil {
		return
	}
	board := boardFor(agencyID)
	board.ApplyRemote(deals)
	broadcastBoard(agencyID, board.Columns())
}
