package importer

import (
	"api/database"
	"api/schemas"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Imported documents with no geocoding run yet get placeholder coordinates
// so the map view has somewhere to pin them.
var defaultLocation = schemas.GeoPoint{Lat: 32.0853, Lng: 34.7818}

// Options configures one import job.
type Options struct {
	Entity        EntityType
	Strategy      DuplicateStrategy
	Overrides     map[string]string
	Discriminator string
}

// Result is the job report returned to the caller. Invalid rows carry the
// reason and display row index so the UI can offer an error export.
type Result struct {
	Total     int          `json:"total"`
	Processed int          `json:"processed"`
	Created   int          `json:"created"`
	Updated   int          `json:"updated"`
	Skipped   int          `json:"skipped"`
	Invalid   []InvalidRow `json:"invalid,omitempty"`
}

// Job wires one import run to its tenant, actor and store access. Existing
// is the natural-key index fetched once before the run; Committer commits
// chunks.
type Job struct {
	AgencyID  string
	ActorID   string
	Options   Options
	Existing  ExistingIndex
	Committer ChunkCommitter
	Progress  func(processed, total int)
}

// Run executes parsed rows through mapping, validation, duplicate
// resolution and chunked writes. A write failure returns the partial Result
// alongside the error; committed chunks are not rolled back, and the
// created/updated counts cover committed rows only.
func (j *Job) Run(ctx context.Context, table *Table) (*Result, error) {
	mapping := AutoMap(table.Headers, j.Options.Entity).ApplyOverrides(j.Options.Overrides)
	validated := Validate(table, mapping, j.Options.Entity, j.Options.Discriminator)

	result := &Result{
		Total:   len(table.Rows),
		Invalid: validated.Invalid,
	}

	now := time.Now()
	var rowOps [][]WriteOp

	for _, row := range validated.Valid {
		decision, existingID := ResolveDuplicate(j.Options.Strategy, NaturalKey(j.Options.Entity, row), j.Existing)
		if decision == DecisionSkip {
			result.Skipped++
			continue
		}

		rowOps = append(rowOps, j.buildRowOps(row, decision, existingID, now))
	}

	writer := &BatchWriter{
		Committer: j.Committer,
		ChunkSize: RowsPerChunk(j.Options.Entity),
		Progress:  j.Progress,
	}

	processed, err := writer.WriteAll(ctx, rowOps)
	// Rows past the committed prefix were never written and stay out of the
	// counts.
	for _, ops := range rowOps[:processed] {
		for _, op := range ops {
			if op.Decision == DecisionUpdate {
				result.Updated++
			} else {
				result.Created++
			}
		}
	}
	result.Processed = processed + result.Skipped + len(result.Invalid)
	if err != nil {
		return result, err
	}
	return result, nil
}

// buildRowOps stamps tenant, actor, source and timestamps onto the row's
// documents and turns them into write operations. The update target on
// DecisionUpdate is the document owning the natural key; in combined mode
// that is the property, and the seller lead is left untouched.
func (j *Job) buildRowOps(row NormalizedRow, decision Decision, existingID bson.ObjectID, now time.Time) []WriteOp {
	var ops []WriteOp

	if row.Lead != nil {
		leadDecision := decision
		if j.Options.Entity != EntityLead {
			leadDecision = DecisionInsert
		}
		if !(j.Options.Entity == EntityCombined && decision == DecisionUpdate) {
			row.Lead.AgencyID = j.AgencyID
			row.Lead.CreatedBy = j.ActorID
			row.Lead.Source = "import"
			row.Lead.UpdatedAt = now
			if leadDecision == DecisionInsert {
				row.Lead.CreatedAt = now
			}
			op := WriteOp{Collection: database.COLLECTION_LEADS, Decision: leadDecision, Doc: row.Lead}
			if leadDecision == DecisionUpdate {
				op.ID = existingID
			}
			ops = append(ops, op)
		}
	}

	if row.Property != nil {
		propDecision := DecisionInsert
		if j.Options.Entity != EntityLead && decision == DecisionUpdate {
			propDecision = DecisionUpdate
		}
		row.Property.AgencyID = j.AgencyID
		row.Property.CreatedBy = j.ActorID
		row.Property.Source = "import"
		row.Property.UpdatedAt = now
		if propDecision == DecisionInsert {
			row.Property.CreatedAt = now
		}
		if j.Options.Entity == EntityCombined && row.Property.Location == nil {
			loc := defaultLocation
			row.Property.Location = &loc
		}
		op := WriteOp{Collection: database.COLLECTION_PROPS, Decision: propDecision, Doc: row.Property}
		if propDecision == DecisionUpdate {
			op.ID = existingID
		}
		ops = append(ops, op)
	}

	if row.Agent != nil {
		row.Agent.AgencyID = j.AgencyID
		row.Agent.CreatedAt = now
		row.Agent.UpdatedAt = now
		ops = append(ops, WriteOp{Collection: database.COLLECTION_USERS, Decision: DecisionInsert, Doc: row.Agent})
	}

	if row.Deal != nil {
		row.Deal.AgencyID = j.AgencyID
		row.Deal.CreatedBy = j.ActorID
		row.Deal.AgentID = j.ActorID
		row.Deal.Source = "import"
		row.Deal.CreatedAt = now
		row.Deal.UpdatedAt = now
		ops = append(ops, WriteOp{Collection: database.COLLECTION_DEALS, Decision: DecisionInsert, Doc: row.Deal})
	}

	return ops
}
