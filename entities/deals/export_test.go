package deals

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"api/schemas"

	"github.com/stretchr/testify/require"
)

func TestRenderDealsCSVStartsWithBOM(t *testing.T) {
	data, err := RenderDealsCSV(nil)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestRenderDealsCSV(t *testing.T) {
	created := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	deals := []schemas.Deal{
		{
			LeadName:            "דנה כהן",
			LeadPhone:           "0501234567",
			PropertyName:        "הרצל 10, חיפה",
			Stage:               schemas.DEAL_STAGE_NEGOTIATION,
			Price:               2500000,
			ProjectedCommission: 50000,
			Probability:         60,
			CreatedAt:           created,
		},
		{
			LeadName:         "Yossi Levi",
			PropertyName:     "Main St 1",
			Stage:            schemas.DEAL_STAGE_WON,
			Price:            1999999.5,
			ActualCommission: 39999.99,
			Probability:      100,
			CreatedAt:        created,
		},
	}

	data, err := RenderDealsCSV(deals)
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\uFEFF")))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, exportHeader, records[0])

	first := records[1]
	require.Equal(t, "דנה כהן", first[0])
	require.Equal(t, "Negotiation", first[3])
	require.Equal(t, "2500000", first[4])
	require.Equal(t, "2026-03-15", first[8])

	second := records[2]
	require.Equal(t, "Won", second[3])
	require.Equal(t, "1999999.5", second[4])
	require.Equal(t, "39999.99", second[6])
}

func TestRenderDealsCSVUnknownStageFallsThrough(t *testing.T) {
	data, err := RenderDealsCSV([]schemas.Deal{{Stage: "archived", CreatedAt: time.Now()}})
	require.NoError(t, err)
	require.Contains(t, string(data), "archived")
}
