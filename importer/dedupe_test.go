package importer

import (
	"testing"

	"api/schemas"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestNaturalKeys(t *testing.T) {
	require.Equal(t, "0501234567", LeadNaturalKey("050-123-4567"))
	require.Equal(t, "herzl 10|haifa", PropertyNaturalKey(" Herzl 10 ", "HAIFA"))

	leadRow := NormalizedRow{Lead: &schemas.Lead{Phone: "0501234567"}}
	require.Equal(t, "0501234567", NaturalKey(EntityLead, leadRow))

	propRow := NormalizedRow{Property: &schemas.Property{Address: "Herzl 10", City: "Haifa"}}
	require.Equal(t, "herzl 10|haifa", NaturalKey(EntityProperty, propRow))
	require.Equal(t, "herzl 10|haifa", NaturalKey(EntityCombined, propRow))

	// Discriminated combined rows without a property always insert.
	require.Equal(t, "", NaturalKey(EntityCombined, NormalizedRow{Lead: &schemas.Lead{Phone: "05"}}))
	require.Equal(t, "", NaturalKey(EntityAgent, NormalizedRow{}))
	require.Equal(t, "", NaturalKey(EntityDeal, NormalizedRow{}))
}

func TestResolveDuplicate(t *testing.T) {
	existingID := bson.NewObjectID()
	existing := ExistingIndex{"0501234567": existingID}

	decision, id := ResolveDuplicate(StrategySkip, "0501234567", existing)
	require.Equal(t, DecisionSkip, decision)
	require.True(t, id.IsZero())

	decision, id = ResolveDuplicate(StrategyUpdate, "0501234567", existing)
	require.Equal(t, DecisionUpdate, decision)
	require.Equal(t, existingID, id)

	decision, _ = ResolveDuplicate(StrategyAlwaysCreate, "0501234567", existing)
	require.Equal(t, DecisionInsert, decision)

	decision, _ = ResolveDuplicate(StrategySkip, "0509999999", existing)
	require.Equal(t, DecisionInsert, decision)

	// Rows without a natural key never match anything.
	decision, _ = ResolveDuplicate(StrategyUpdate, "", existing)
	require.Equal(t, DecisionInsert, decision)
}
