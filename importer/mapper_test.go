package importer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAutoMapHebrewLeadHeaders(t *testing.T) {
	mapping := AutoMap([]string{"שם", "טלפון", "עיר", "תקציב", "מקור הגעה"}, EntityLead)

	require.Equal(t, FieldName, mapping["שם"])
	require.Equal(t, FieldPhone, mapping["טלפון"])
	require.Equal(t, FieldCity, mapping["עיר"])
	require.Equal(t, FieldBudget, mapping["תקציב"])
	require.Equal(t, FieldCustom, mapping["מקור הגעה"])
}

func TestAutoMapEnglishPropertyHeaders(t *testing.T) {
	mapping := AutoMap([]string{"Address", "City", "PRICE", "Rooms", "sqm"}, EntityProperty)

	require.Equal(t, FieldAddress, mapping["Address"])
	require.Equal(t, FieldPrice, mapping["PRICE"])
	require.Equal(t, FieldSize, mapping["sqm"])
}

func TestAutoMapCombinedIsLeadPropertyUnion(t *testing.T) {
	mapping := AutoMap([]string{"שם", "כתובת", "מחיר", "תקציב"}, EntityCombined)

	require.Equal(t, FieldName, mapping["שם"])
	require.Equal(t, FieldAddress, mapping["כתובת"])
	require.Equal(t, FieldPrice, mapping["מחיר"])
	require.Equal(t, FieldBudget, mapping["תקציב"])
}

func TestApplyOverrides(t *testing.T) {
	mapping := AutoMap([]string{"שם", "מספר", "הערות"}, EntityLead)
	require.Equal(t, FieldCustom, mapping["מספר"])

	merged := mapping.ApplyOverrides(map[string]string{
		"מספר":      FieldPhone,
		"לא קיימת": FieldEmail,
	})

	require.Equal(t, FieldPhone, merged["מספר"])
	require.NotContains(t, merged, "לא קיימת")
	// Original mapping stays untouched.
	require.Equal(t, FieldCustom, mapping["מספר"])
}

func TestMappingApplySplitsCustomFields(t *testing.T) {
	mapping := Mapping{"שם": FieldName, "טלפון": FieldPhone, "מקור": FieldCustom}
	row := Row{"שם": "דנה כהן", "טלפון": "0501234567", "מקור": "פייסבוק", "טור זר": "x"}

	fields, custom := mapping.Apply(row)

	require.Equal(t, "דנה כהן", fields[FieldName])
	require.Equal(t, "0501234567", fields[FieldPhone])
	require.Equal(t, "פייסבוק", custom["מקור"])
	require.Equal(t, "x", custom["טור זר"])
}

func TestMappingApplyDropsEmptyCells(t *testing.T) {
	mapping := Mapping{"name": FieldName, "phone": FieldPhone}
	fields, custom := mapping.Apply(Row{"name": "Dana", "phone": ""})

	require.Equal(t, "Dana", fields[FieldName])
	require.NotContains(t, fields, FieldPhone)
	require.Empty(t, custom)
}

func TestDiscriminate(t *testing.T) {
	require.Equal(t, RowKindLead, Discriminate(Row{"סוג": "קונה"}, "סוג"))
	require.Equal(t, RowKindProperty, Discriminate(Row{"סוג": "מוכר"}, "סוג"))
	require.Equal(t, RowKindProperty, Discriminate(Row{"סוג": "Seller"}, "סוג"))
	require.Equal(t, RowKindUnknown, Discriminate(Row{"סוג": "???"}, "סוג"))
	require.Equal(t, RowKindUnknown, Discriminate(Row{}, "סוג"))
}
