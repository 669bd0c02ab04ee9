package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeCommitter struct {
	chunks      [][]WriteOp
	failAtChunk int // 1-based; 0 disables
}

func (f *fakeCommitter) CommitChunk(_ context.Context, ops []WriteOp) error {
	if f.failAtChunk > 0 && len(f.chunks)+1 == f.failAtChunk {
		return errors.New("connection reset")
	}
	f.chunks = append(f.chunks, ops)
	return nil
}

func opRows(n, opsPerRow int) [][]WriteOp {
	rows := make([][]WriteOp, n)
	for i := range rows {
		rows[i] = make([]WriteOp, opsPerRow)
	}
	return rows
}

func TestRowsPerChunk(t *testing.T) {
	require.Equal(t, 400, RowsPerChunk(EntityLead))
	require.Equal(t, 400, RowsPerChunk(EntityDeal))
	require.Equal(t, 200, RowsPerChunk(EntityCombined))
}

func TestPartitionRows(t *testing.T) {
	chunks := PartitionRows(opRows(950, 1), 400)
	require.Len(t, chunks, 3)
	require.Len(t, chunks[0], 400)
	require.Len(t, chunks[1], 400)
	require.Len(t, chunks[2], 150)

	require.Empty(t, PartitionRows(nil, 400))
}

func TestPartitionRowsKeepsRowsWhole(t *testing.T) {
	// Combined rows carry two ops each; a row is never split across chunks.
	chunks := PartitionRows(opRows(3, 2), 2)
	require.Len(t, chunks, 2)
	require.Len(t, chunks[0], 2)
	require.Len(t, chunks[1], 1)
	require.Len(t, chunks[1][0], 2)
}

func TestBatchWriterWriteAll(t *testing.T) {
	committer := &fakeCommitter{}
	var progress []int
	writer := &BatchWriter{
		Committer: committer,
		ChunkSize: 2,
		Progress:  func(processed, total int) { progress = append(progress, processed) },
	}

	processed, err := writer.WriteAll(context.Background(), opRows(5, 1))
	require.NoError(t, err)
	require.Equal(t, 5, processed)
	require.Len(t, committer.chunks, 3)
	require.Equal(t, []int{2, 4, 5}, progress)
}

func TestBatchWriterStopsOnChunkFailure(t *testing.T) {
	committer := &fakeCommitter{failAtChunk: 2}
	writer := &BatchWriter{Committer: committer, ChunkSize: 2}

	processed, err := writer.WriteAll(context.Background(), opRows(5, 1))
	require.Error(t, err)
	require.Contains(t, err.Error(), "chunk failed after 2/5 rows")

	// The first chunk stays committed; nothing past the failure runs.
	require.Equal(t, 2, processed)
	require.Len(t, committer.chunks, 1)
}
