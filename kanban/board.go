// Package kanban holds the in-memory deal board: a stage-ordered view of
// one agency's deals fed by store snapshots on one side and optimistic
// drag-and-drop moves on the other.
package kanban

import (
	"api/schemas"
	"errors"
	"sort"
	"sync"
)

var (
	ErrUnknownDeal  = errors.New("kanban: deal not on the board")
	ErrSameStage    = errors.New("kanban: source and destination stage are equal")
	ErrInvalidStage = errors.New("kanban: unknown destination stage")
	// ErrCommissionRequired marks a drop on the won column: the move must
	// go through the closing flow, which collects the actual commission
	// first. The board stays untouched.
	ErrCommissionRequired = errors.New("kanban: closing a deal requires a confirmed commission")
	// ErrTerminalStage refuses moves out of won or lost: closed deals do
	// not re-enter the pipeline by drag.
	ErrTerminalStage = errors.New("kanban: deal is in a terminal stage")
	ErrStaleMove     = errors.New("kanban: no pending move with that version")
)

type pendingMove struct {
	version uint64
	memento schemas.Deal
}

// Board reconciles two writers over the same deal list: optimistic local
// moves and full remote snapshots. Each move gets a monotonic version; a
// remote snapshot replaces everything except the stage of deals with a
// pending move, so an in-flight drag is not flickered away by a
// subscription tick that predates its acknowledgment. The pending stage
// holds until the move is confirmed or rolled back.
type Board struct {
	mu      sync.Mutex
	deals   map[string]schemas.Deal
	pending map[string]pendingMove
	// versions counts applied events; remote snapshots and local moves
	// draw from the same sequence.
	version uint64
}

func NewBoard() *Board {
	return &Board{
		deals:   map[string]schemas.Deal{},
		pending: map[string]pendingMove{},
	}
}

// ApplyRemote replaces the board content with a fresh store snapshot,
// keeping the locally-moved stage for deals with a pending optimistic move.
func (b *Board) ApplyRemote(deals []schemas.Deal) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.version++
	replacement := make(map[string]schemas.Deal, len(deals))
	for _, deal := range deals {
		id := deal.ID.Hex()
		if local, ok := b.deals[id]; ok {
			if _, moving := b.pending[id]; moving {
				deal.Stage = local.Stage
			}
		}
		replacement[id] = deal
	}
	b.deals = replacement
}

// BeginMove applies an optimistic stage move and returns its version along
// with nothing persisted yet. The caller persists the transition remotely,
// then calls Confirm or Rollback with the returned version.
func (b *Board) BeginMove(dealID, toStage string) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	deal, ok := b.deals[dealID]
	if !ok {
		return 0, ErrUnknownDeal
	}
	if !schemas.IsValidDealStage(toStage) {
		return 0, ErrInvalidStage
	}
	if deal.Stage == toStage {
		return 0, ErrSameStage
	}
	if schemas.IsTerminalDealStage(deal.Stage) {
		return 0, ErrTerminalStage
	}
	if toStage == schemas.DEAL_STAGE_WON {
		return 0, ErrCommissionRequired
	}

	b.version++
	b.pending[dealID] = pendingMove{version: b.version, memento: deal}

	deal.Stage = toStage
	b.deals[dealID] = deal

	return b.version, nil
}

// Confirm clears the pending move once the remote update was acknowledged.
func (b *Board) Confirm(dealID string, version uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	pending, ok := b.pending[dealID]
	if !ok || pending.version != version {
		return ErrStaleMove
	}
	delete(b.pending, dealID)
	return nil
}

// Rollback restores the exact pre-move deal after a failed remote update.
// A snapshot that removed the deal mid-move wins: rollback must not bring a
// deleted deal back onto the board.
func (b *Board) Rollback(dealID string, version uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	pending, ok := b.pending[dealID]
	if !ok || pending.version != version {
		return ErrStaleMove
	}
	delete(b.pending, dealID)
	if _, present := b.deals[dealID]; present {
		b.deals[dealID] = pending.memento
	}
	return nil
}

// Column is one stage of the pipeline with its deals in creation order.
type Column struct {
	Stage string         `json:"stage"`
	Deals []schemas.Deal `json:"deals"`
}

// Columns renders the board in pipeline order.
func (b *Board) Columns() []Column {
	b.mu.Lock()
	defer b.mu.Unlock()

	byStage := map[string][]schemas.Deal{}
	for _, deal := range b.deals {
		byStage[deal.Stage] = append(byStage[deal.Stage], deal)
	}

	columns := make([]Column, 0, len(schemas.DealStages))
	for _, stage := range schemas.DealStages {
		deals := byStage[stage]
		sort.Slice(deals, func(i, j int) bool {
			return deals[i].CreatedAt.Before(deals[j].CreatedAt)
		})
		columns = append(columns, Column{Stage: stage, Deals: deals})
	}
	return columns
}

// Snapshot returns a copy of every deal on the board.
func (b *Board) Snapshot() []schemas.Deal {
	b.mu.Lock()
	defer b.mu.Unlock()

	deals := make([]schemas.Deal, 0, len(b.deals))
	for _, deal := range b.deals {
		deals = append(deals, deal)
	}
	sort.Slice(deals, func(i, j int) bool {
		return deals[i].ID.Hex() < deals[j].ID.Hex()
	})
	return deals
}
