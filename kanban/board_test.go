package kanban

import (
	"testing"
	"time"

	"api/schemas"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func testDeal(stage string, createdAt time.Time) schemas.Deal {
	return schemas.Deal{
		ID:        bson.NewObjectID(),
		AgencyID:  "agency-1",
		Stage:     stage,
		Price:     1000000,
		CreatedAt: createdAt,
	}
}

func seededBoard(deals ...schemas.Deal) *Board {
	board := NewBoard()
	board.ApplyRemote(deals)
	return board
}

func stageOf(t *testing.T, board *Board, dealID string) string {
	t.Helper()
	for _, deal := range board.Snapshot() {
		if deal.ID.Hex() == dealID {
			return deal.Stage
		}
	}
	t.Fatalf("deal %s not on board", dealID)
	return ""
}

func TestBeginMoveAndConfirm(t *testing.T) {
	deal := testDeal(schemas.DEAL_STAGE_VIEWING, time.Now())
	board := seededBoard(deal)

	version, err := board.BeginMove(deal.ID.Hex(), schemas.DEAL_STAGE_OFFER)
	require.NoError(t, err)
	require.Equal(t, schemas.DEAL_STAGE_OFFER, stageOf(t, board, deal.ID.Hex()))

	require.NoError(t, board.Confirm(deal.ID.Hex(), version))
	require.Equal(t, schemas.DEAL_STAGE_OFFER, stageOf(t, board, deal.ID.Hex()))
}

func TestRollbackRestoresExactDeal(t *testing.T) {
	deal := testDeal(schemas.DEAL_STAGE_NEGOTIATION, time.Now())
	deal.Probability = 60
	deal.ProjectedCommission = 42000
	board := seededBoard(deal)

	version, err := board.BeginMove(deal.ID.Hex(), schemas.DEAL_STAGE_CONTRACT)
	require.NoError(t, err)

	require.NoError(t, board.Rollback(deal.ID.Hex(), version))

	restored := board.Snapshot()[0]
	require.Equal(t, deal, restored)
}

func TestRollbackDoesNotResurrectRemovedDeal(t *testing.T) {
	deal := testDeal(schemas.DEAL_STAGE_VIEWING, time.Now())
	board := seededBoard(deal)

	version, err := board.BeginMove(deal.ID.Hex(), schemas.DEAL_STAGE_OFFER)
	require.NoError(t, err)

	// Deal deleted remotely while the move was in flight.
	board.ApplyRemote(nil)

	require.NoError(t, board.Rollback(deal.ID.Hex(), version))
	require.Empty(t, board.Snapshot())
}

func TestBeginMoveErrors(t *testing.T) {
	deal := testDeal(schemas.DEAL_STAGE_VIEWING, time.Now())
	board := seededBoard(deal)

	_, err := board.BeginMove(bson.NewObjectID().Hex(), schemas.DEAL_STAGE_OFFER)
	require.ErrorIs(t, err, ErrUnknownDeal)

	_, err = board.BeginMove(deal.ID.Hex(), "escrow")
	require.ErrorIs(t, err, ErrInvalidStage)

	_, err = board.BeginMove(deal.ID.Hex(), schemas.DEAL_STAGE_VIEWING)
	require.ErrorIs(t, err, ErrSameStage)

	// Same-stage and refused moves leave no pending state behind.
	require.Equal(t, schemas.DEAL_STAGE_VIEWING, stageOf(t, board, deal.ID.Hex()))
}

func TestBeginMoveRefusesLeavingTerminalStage(t *testing.T) {
	deal := testDeal(schemas.DEAL_STAGE_WON, time.Now())
	board := seededBoard(deal)

	_, err := board.BeginMove(deal.ID.Hex(), schemas.DEAL_STAGE_VIEWING)
	require.ErrorIs(t, err, ErrTerminalStage)
	require.Equal(t, schemas.DEAL_STAGE_WON, stageOf(t, board, deal.ID.Hex()))
}

func TestBeginMoveRefusesWonColumn(t *testing.T) {
	deal := testDeal(schemas.DEAL_STAGE_CONTRACT, time.Now())
	board := seededBoard(deal)

	_, err := board.BeginMove(deal.ID.Hex(), schemas.DEAL_STAGE_WON)
	require.ErrorIs(t, err, ErrCommissionRequired)
	require.Equal(t, schemas.DEAL_STAGE_CONTRACT, stageOf(t, board, deal.ID.Hex()))
}

func TestConfirmAndRollbackRejectStaleVersions(t *testing.T) {
	deal := testDeal(schemas.DEAL_STAGE_VIEWING, time.Now())
	board := seededBoard(deal)

	version, err := board.BeginMove(deal.ID.Hex(), schemas.DEAL_STAGE_OFFER)
	require.NoError(t, err)

	require.ErrorIs(t, board.Confirm(deal.ID.Hex(), version+1), ErrStaleMove)
	require.ErrorIs(t, board.Rollback(deal.ID.Hex(), version+1), ErrStaleMove)

	require.NoError(t, board.Confirm(deal.ID.Hex(), version))
	require.ErrorIs(t, board.Confirm(deal.ID.Hex(), version), ErrStaleMove)
}

func TestApplyRemoteKeepsPendingStage(t *testing.T) {
	deal := testDeal(schemas.DEAL_STAGE_VIEWING, time.Now())
	board := seededBoard(deal)

	version, err := board.BeginMove(deal.ID.Hex(), schemas.DEAL_STAGE_OFFER)
	require.NoError(t, err)

	// A snapshot taken before the move persisted still carries the old
	// stage; the optimistic stage wins while the move is in flight.
	stale := deal
	stale.Price = 1100000
	board.ApplyRemote([]schemas.Deal{stale})

	refreshed := board.Snapshot()[0]
	require.Equal(t, schemas.DEAL_STAGE_OFFER, refreshed.Stage)
	require.Equal(t, 1100000.0, refreshed.Price)

	// Once confirmed, snapshots flow through untouched again.
	require.NoError(t, board.Confirm(deal.ID.Hex(), version))
	board.ApplyRemote([]schemas.Deal{stale})
	require.Equal(t, schemas.DEAL_STAGE_VIEWING, stageOf(t, board, deal.ID.Hex()))
}

func TestApplyRemoteDropsRemovedDeals(t *testing.T) {
	kept := testDeal(schemas.DEAL_STAGE_OFFER, time.Now())
	removed := testDeal(schemas.DEAL_STAGE_VIEWING, time.Now())
	board := seededBoard(kept, removed)

	board.ApplyRemote([]schemas.Deal{kept})

	snapshot := board.Snapshot()
	require.Len(t, snapshot, 1)
	require.Equal(t, kept.ID, snapshot[0].ID)
}

func TestColumnsPipelineOrderAndCreationSort(t *testing.T) {
	now := time.Now()
	older := testDeal(schemas.DEAL_STAGE_VIEWING, now.Add(-time.Hour))
	newer := testDeal(schemas.DEAL_STAGE_VIEWING, now)
	other := testDeal(schemas.DEAL_STAGE_CONTRACT, now)
	board := seededBoard(newer, older, other)

	columns := board.Columns()
	require.Len(t, columns, len(schemas.DealStages))

	for i, stage := range schemas.DealStages {
		require.Equal(t, stage, columns[i].Stage)
	}

	viewing := columns[1]
	require.Equal(t, schemas.DEAL_STAGE_VIEWING, viewing.Stage)
	require.Len(t, viewing.Deals, 2)
	require.Equal(t, older.ID, viewing.Deals[0].ID)
	require.Equal(t, newer.ID, viewing.Deals[1].ID)
}
