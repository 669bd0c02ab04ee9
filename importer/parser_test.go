package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFileCSV(t *testing.T) {
	csv := "name,phone,city\nDana Cohen,050-1234567,Tel Aviv\nYossi Levi,0521112233,Haifa\n"

	table, err := ParseFile("leads.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, []string{"name", "phone", "city"}, table.Headers)
	require.Len(t, table.Rows, 2)
	require.Equal(t, "Dana Cohen", table.Rows[0]["name"])
	require.Equal(t, "Haifa", table.Rows[1]["city"])
}

func TestParseFileTrimsBOM(t *testing.T) {
	csv := "\xEF\xBB\xBFname,phone\nDana,0501234567\n"

	table, err := ParseFile("leads.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, "name", table.Headers[0])
}

func TestParseFileSemicolonDelimiter(t *testing.T) {
	csv := "name;phone;city\nDana Cohen;0501234567;Tel Aviv\n"

	table, err := ParseFile("leads.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, []string{"name", "phone", "city"}, table.Headers)
	require.Equal(t, "Tel Aviv", table.Rows[0]["city"])
}

func TestParseFileHebrewHeaders(t *testing.T) {
	csv := "שם,טלפון,עיר\nדנה כהן,0501234567,תל אביב\n"

	table, err := ParseFile("import.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, []string{"שם", "טלפון", "עיר"}, table.Headers)
	require.Equal(t, "דנה כהן", table.Rows[0]["שם"])
}

func TestParseFileSkipsEmptyRows(t *testing.T) {
	csv := "name,phone\nDana,0501234567\n,\n  , \nYossi,0521112233\n"

	table, err := ParseFile("leads.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
}

func TestParseFileHeaderOnly(t *testing.T) {
	_, err := ParseFile("leads.csv", strings.NewReader("name,phone\n"))
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Contains(t, parseErr.Error(), "no data rows")
}

func TestParseFileRaggedRows(t *testing.T) {
	csv := "name,phone,city\nDana,0501234567\nYossi,0521112233,Haifa,extra\n"

	table, err := ParseFile("leads.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	require.Equal(t, "", table.Rows[0]["city"])
	require.Equal(t, "Haifa", table.Rows[1]["city"])
}

func TestIsXLSXByMagicBytes(t *testing.T) {
	require.True(t, isXLSX("upload", []byte("PK\x03\x04rest")))
	require.True(t, isXLSX("listings.xlsx", []byte("anything")))
	require.False(t, isXLSX("leads.csv", []byte("name,phone")))
}

func TestDisplayIndex(t *testing.T) {
	require.Equal(t, 2, DisplayIndex(0))
	require.Equal(t, 12, DisplayIndex(10))
}
