package importer

import (
	"context"
	"fmt"
	"testing"

	"api/database"
	"api/schemas"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func runJob(t *testing.T, table *Table, options Options, existing ExistingIndex) (*Result, *fakeCommitter) {
	t.Helper()
	committer := &fakeCommitter{}
	job := &Job{
		AgencyID:  "agency-1",
		ActorID:   "agent-1",
		Options:   options,
		Existing:  existing,
		Committer: committer,
	}
	result, err := job.Run(context.Background(), table)
	require.NoError(t, err)
	return result, committer
}

func committedOps(committer *fakeCommitter) []WriteOp {
	var ops []WriteOp
	for _, chunk := range committer.chunks {
		ops = append(ops, chunk...)
	}
	return ops
}

func TestJobRunInsertsLeads(t *testing.T) {
	table := &Table{
		Headers: []string{"שם", "טלפון", "עיר"},
		Rows: []Row{
			{"שם": "דנה כהן", "טלפון": "0501234567", "עיר": "תל אביב"},
			{"שם": "יוסי לוי", "טלפון": "0521112233", "עיר": "חיפה"},
		},
	}

	result, committer := runJob(t, table, Options{Entity: EntityLead}, ExistingIndex{})

	require.Equal(t, 2, result.Total)
	require.Equal(t, 2, result.Processed)
	require.Equal(t, 2, result.Created)
	require.Zero(t, result.Updated)
	require.Zero(t, result.Skipped)
	require.Empty(t, result.Invalid)

	ops := committedOps(committer)
	require.Len(t, ops, 2)
	lead := ops[0].Doc.(*schemas.Lead)
	require.Equal(t, "agency-1", lead.AgencyID)
	require.Equal(t, "agent-1", lead.CreatedBy)
	require.Equal(t, "import", lead.Source)
	require.False(t, lead.CreatedAt.IsZero())
}

func TestJobRunSkipStrategyIsIdempotent(t *testing.T) {
	table := &Table{
		Headers: []string{"שם", "טלפון"},
		Rows: []Row{
			{"שם": "דנה כהן", "טלפון": "050-1234567"},
			{"שם": "חדש לגמרי", "טלפון": "0539998877"},
		},
	}
	existing := ExistingIndex{"0501234567": bson.NewObjectID()}

	result, committer := runJob(t, table, Options{Entity: EntityLead, Strategy: StrategySkip}, existing)

	require.Equal(t, 2, result.Processed)
	require.Equal(t, 1, result.Created)
	require.Equal(t, 1, result.Skipped)
	require.Len(t, committedOps(committer), 1)
}

func TestJobRunUpdateStrategyTargetsExisting(t *testing.T) {
	existingID := bson.NewObjectID()
	table := &Table{
		Headers: []string{"address", "city", "price"},
		Rows:    []Row{{"address": "Herzl 10", "city": "Haifa", "price": "2600000"}},
	}
	existing := ExistingIndex{"herzl 10|haifa": existingID}

	result, committer := runJob(t, table, Options{Entity: EntityProperty, Strategy: StrategyUpdate}, existing)

	require.Equal(t, 1, result.Updated)
	require.Zero(t, result.Created)

	ops := committedOps(committer)
	require.Len(t, ops, 1)
	require.Equal(t, DecisionUpdate, ops[0].Decision)
	require.Equal(t, existingID, ops[0].ID)
}

func TestJobRunCombinedWritesTwoDocs(t *testing.T) {
	table := &Table{
		Headers: []string{"שם", "טלפון", "כתובת", "עיר", "מחיר"},
		Rows: []Row{
			{"שם": "אבי מזרחי", "טלפון": "0539998877", "כתובת": "ביאליק 7", "עיר": "רמת גן", "מחיר": "3,100,000"},
		},
	}

	result, committer := runJob(t, table, Options{Entity: EntityCombined}, ExistingIndex{})

	require.Equal(t, 2, result.Created)

	ops := committedOps(committer)
	require.Len(t, ops, 2)
	require.Equal(t, database.COLLECTION_LEADS, ops[0].Collection)
	require.Equal(t, database.COLLECTION_PROPS, ops[1].Collection)

	lead := ops[0].Doc.(*schemas.Lead)
	property := ops[1].Doc.(*schemas.Property)
	require.Equal(t, lead.Name, property.OwnerName)
	require.Equal(t, lead.Phone, property.OwnerPhone)
	require.NotNil(t, property.Location)
	require.Equal(t, 32.0853, property.Location.Lat)
}

func TestJobRunCombinedUpdateLeavesLeadAlone(t *testing.T) {
	existingID := bson.NewObjectID()
	table := &Table{
		Headers: []string{"שם", "טלפון", "כתובת", "עיר", "מחיר"},
		Rows: []Row{
			{"שם": "אבי מזרחי", "טלפון": "0539998877", "כתובת": "ביאליק 7", "עיר": "רמת גן", "מחיר": "3,300,000"},
		},
	}
	existing := ExistingIndex{PropertyNaturalKey("ביאליק 7", "רמת גן"): existingID}

	result, committer := runJob(t, table, Options{Entity: EntityCombined, Strategy: StrategyUpdate}, existing)

	require.Equal(t, 1, result.Updated)
	require.Zero(t, result.Created)

	ops := committedOps(committer)
	require.Len(t, ops, 1)
	require.Equal(t, database.COLLECTION_PROPS, ops[0].Collection)
	require.Equal(t, DecisionUpdate, ops[0].Decision)
	require.Equal(t, existingID, ops[0].ID)
}

func TestJobRunCountsInvalidRowsAsProcessed(t *testing.T) {
	table := &Table{
		Headers: []string{"שם", "טלפון"},
		Rows: []Row{
			{"שם": "דנה כהן", "טלפון": "0501234567"},
			{"שם": "בלי טלפון", "טלפון": ""},
		},
	}

	result, _ := runJob(t, table, Options{Entity: EntityLead}, ExistingIndex{})

	require.Equal(t, 2, result.Total)
	require.Equal(t, 2, result.Processed)
	require.Equal(t, 1, result.Created)
	require.Len(t, result.Invalid, 1)
	require.Equal(t, 3, result.Invalid[0].Index)
}

func TestJobRunOverridesRescueUnmappedColumn(t *testing.T) {
	table := &Table{
		Headers: []string{"שם", "מספר"},
		Rows:    []Row{{"שם": "דנה כהן", "מספר": "0501234567"}},
	}

	options := Options{
		Entity:    EntityLead,
		Overrides: map[string]string{"מספר": FieldPhone},
	}
	result, _ := runJob(t, table, options, ExistingIndex{})

	require.Empty(t, result.Invalid)
	require.Equal(t, 1, result.Created)
}

func TestJobRunPartialFailureReportsProgress(t *testing.T) {
	rows := make([]Row, 6)
	for i := range rows {
		rows[i] = Row{"שם": "ליד", "טלפון": "05000000" + string(rune('0'+i))}
	}
	table := &Table{Headers: []string{"שם", "טלפון"}, Rows: rows}

	committer := &fakeCommitter{failAtChunk: 1}
	job := &Job{
		AgencyID:  "agency-1",
		ActorID:   "agent-1",
		Options:   Options{Entity: EntityLead},
		Existing:  ExistingIndex{},
		Committer: committer,
	}

	result, err := job.Run(context.Background(), table)
	require.Error(t, err)
	require.Contains(t, err.Error(), "chunk failed")
	require.Zero(t, result.Processed)
	require.Zero(t, result.Created)
	require.Zero(t, result.Updated)
	require.Empty(t, committer.chunks)
	require.Equal(t, 6, result.Total)
}

func TestJobRunFailureCountsOnlyCommittedRows(t *testing.T) {
	chunk := RowsPerChunk(EntityLead)
	rows := make([]Row, chunk+5)
	for i := range rows {
		rows[i] = Row{"שם": "ליד", "טלפון": fmt.Sprintf("05%08d", i)}
	}
	table := &Table{Headers: []string{"שם", "טלפון"}, Rows: rows}

	committer := &fakeCommitter{failAtChunk: 2}
	job := &Job{
		AgencyID:  "agency-1",
		ActorID:   "agent-1",
		Options:   Options{Entity: EntityLead},
		Existing:  ExistingIndex{},
		Committer: committer,
	}

	result, err := job.Run(context.Background(), table)
	require.Error(t, err)
	require.Equal(t, chunk, result.Processed)
	require.Equal(t, chunk, result.Created)
	require.Zero(t, result.Updated)
	require.Len(t, committedOps(committer), chunk)
}
