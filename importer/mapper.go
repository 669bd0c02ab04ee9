package importer

import "strings"

// Mapping assigns each source header a canonical field key, or FieldCustom
// for headers routed to the custom_data bag.
type Mapping map[string]string

// AutoMap builds the suggested mapping for the given headers by exact match
// against the entity's header dictionary. The caller may override any entry
// before validation runs.
func AutoMap(headers []string, entity EntityType) Mapping {
	dictionary := headerDictionaries[entity]

	mapping := Mapping{}
	for _, header := range headers {
		if header == "" {
			continue
		}
		field, ok := dictionary[strings.ToLower(strings.TrimSpace(header))]
		if !ok {
			field = FieldCustom
		}
		mapping[header] = field
	}
	return mapping
}

// ApplyOverrides merges user-chosen mappings over the auto-suggested one.
// Overrides for headers that do not exist in the file are ignored.
func (m Mapping) ApplyOverrides(overrides map[string]string) Mapping {
	merged := Mapping{}
	for header, field := range m {
		merged[header] = field
	}
	for header, field := range overrides {
		if _, exists := merged[header]; exists {
			merged[header] = field
		}
	}
	return merged
}

// Apply splits one raw row into mapped canonical fields and the custom bag.
func (m Mapping) Apply(row Row) (fields map[string]string, custom map[string]any) {
	fields = map[string]string{}
	custom = map[string]any{}
	for header, value := range row {
		if value == "" {
			continue
		}
		field, ok := m[header]
		if !ok || field == FieldCustom {
			custom[header] = value
			continue
		}
		fields[field] = value
	}
	return fields, custom
}

// RowKind classifies a combined-mode row through its discriminator cell.
type RowKind int

const (
	RowKindLead RowKind = iota
	RowKindProperty
	RowKindUnknown
)

// Discriminate decides, per row, whether a combined-file row describes a
// lead or a property. Rows with no recognizable keyword are unknown and the
// validator rejects them.
func Discriminate(row Row, column string) RowKind {
	value, ok := row[column]
	if !ok {
		return RowKindUnknown
	}
	if matchesKeyword(value, buyerKeywords) {
		return RowKindLead
	}
	if matchesKeyword(value, sellerKeywords) {
		return RowKindProperty
	}
	return RowKindUnknown
}
