package importer

import (
	"api/database"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Rows per committed chunk. Combined rows write a lead and a property each,
// so they use half the size to stay under the same per-batch ceiling.
const (
	chunkSizeRows     = 400
	chunkSizeCombined = chunkSizeRows / 2
)

// RowsPerChunk returns the chunk size for the entity type.
func RowsPerChunk(entity EntityType) int {
	if entity == EntityCombined {
		return chunkSizeCombined
	}
	return chunkSizeRows
}

// WriteOp is one document write produced from a source row.
type WriteOp struct {
	Collection string
	Decision   Decision // DecisionInsert or DecisionUpdate
	ID         bson.ObjectID
	Doc        any
}

// ChunkCommitter commits one chunk of writes atomically.
type ChunkCommitter interface {
	CommitChunk(ctx context.Context, ops []WriteOp) error
}

// PartitionRows groups row op-lists into chunks of at most size rows,
// preserving order and never splitting one row across two chunks.
func PartitionRows(rowOps [][]WriteOp, size int) [][][]WriteOp {
	if size <= 0 {
		size = chunkSizeRows
	}
	var chunks [][][]WriteOp
	for start := 0; start < len(rowOps); start += size {
		end := min(start+size, len(rowOps))
		chunks = append(chunks, rowOps[start:end])
	}
	return chunks
}

// BatchWriter commits validated rows chunk by chunk, sequentially, awaiting
// each commit before the next. A chunk failure aborts the job; chunks
// committed before it stay committed, and the processed count tells the
// caller how far the job got.
type BatchWriter struct {
	Committer ChunkCommitter
	ChunkSize int
	Progress  func(processed, total int)
}

func (w *BatchWriter) WriteAll(ctx context.Context, rowOps [][]WriteOp) (int, error) {
	total := len(rowOps)
	processed := 0

	for _, chunk := range PartitionRows(rowOps, w.ChunkSize) {
		var ops []WriteOp
		for _, row := range chunk {
			ops = append(ops, row...)
		}

		if err := w.Committer.CommitChunk(ctx, ops); err != nil {
			return processed, fmt.Errorf("chunk failed after %d/%d rows: %w", processed, total, err)
		}

		processed += len(chunk)
		if w.Progress != nil {
			w.Progress(processed, total)
		}
	}

	return processed, nil
}

// MongoCommitter commits each chunk inside one transaction, so a failed
// chunk leaves nothing partially applied.
type MongoCommitter struct{}

func (MongoCommitter) CommitChunk(ctx context.Context, ops []WriteOp) error {
	client, err := database.MongoClient()
	if err != nil {
		return err
	}

	session, err := client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		models := map[string][]mongo.WriteModel{}
		order := []string{}
		for _, op := range ops {
			if _, seen := models[op.Collection]; !seen {
				order = append(order, op.Collection)
			}
			switch op.Decision {
			case DecisionUpdate:
				models[op.Collection] = append(models[op.Collection],
					mongo.NewUpdateOneModel().
						SetFilter(bson.D{{Key: "_id", Value: op.ID}}).
						SetUpdate(bson.D{{Key: "$set", Value: op.Doc}}))
			default:
				models[op.Collection] = append(models[op.Collection],
					mongo.NewInsertOneModel().SetDocument(op.Doc))
			}
		}

		db := client.Database(database.GetDB())
		for _, name := range order {
			if _, err := db.Collection(name).BulkWrite(ctx, models[name]); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})

	return err
}
