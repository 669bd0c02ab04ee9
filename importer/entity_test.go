package importer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEntityType(t *testing.T) {
	entity, err := ParseEntityType("combined")
	require.NoError(t, err)
	require.Equal(t, EntityCombined, entity)

	_, err = ParseEntityType("invoice")
	require.Error(t, err)
}

func TestParseDuplicateStrategyDefaultsToSkip(t *testing.T) {
	strategy, err := ParseDuplicateStrategy("")
	require.NoError(t, err)
	require.Equal(t, StrategySkip, strategy)

	strategy, err = ParseDuplicateStrategy("always_create")
	require.NoError(t, err)
	require.Equal(t, StrategyAlwaysCreate, strategy)

	_, err = ParseDuplicateStrategy("merge")
	require.Error(t, err)
}
