package importer

import (
	"api/schemas"
	"api/utils"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NormalizedRow is one accepted source row turned into typed documents.
// Combined rows fill both Lead and Property.
type NormalizedRow struct {
	Index    int
	Lead     *schemas.Lead
	Property *schemas.Property
	Agent    *schemas.AppUser
	Deal     *schemas.Deal
}

// DocsPerRow reports how many documents this row will write.
func (n NormalizedRow) DocsPerRow() int {
	count := 0
	if n.Lead != nil {
		count++
	}
	if n.Property != nil {
		count++
	}
	if n.Agent != nil {
		count++
	}
	if n.Deal != nil {
		count++
	}
	return count
}

type InvalidRow struct {
	Index  int    `json:"row"`
	Reason string `json:"reason"`
}

type ValidationResult struct {
	Valid   []NormalizedRow
	Invalid []InvalidRow
}

type rowValidator func(fields map[string]string, custom map[string]any, index int) (NormalizedRow, error)

var rowValidators = map[EntityType]rowValidator{
	EntityLead:     validateLeadRow,
	EntityProperty: validatePropertyRow,
	EntityAgent:    validateAgentRow,
	EntityDeal:     validateDealRow,
	EntityCombined: validateCombinedRow,
}

// Validate runs the mapping and the entity validator over every row. It is
// pure: no I/O, rejected rows are collected with a reason and excluded from
// any further processing. discriminator is only consulted in combined mode;
// pass "" to treat every combined row as seller-plus-property.
func Validate(table *Table, mapping Mapping, entity EntityType, discriminator string) ValidationResult {
	result := ValidationResult{}

	for position, row := range table.Rows {
		index := DisplayIndex(position)

		validator := rowValidators[entity]
		if entity == EntityCombined && discriminator != "" {
			switch Discriminate(row, discriminator) {
			case RowKindLead:
				validator = rowValidators[EntityLead]
			case RowKindUnknown:
				reason := fmt.Sprintf("unrecognized value %q in discriminator column %q", row[discriminator], discriminator)
				result.Invalid = append(result.Invalid, InvalidRow{Index: index, Reason: reason})
				continue
			}
		}

		fields, custom := mapping.Apply(row)
		normalized, err := validator(fields, custom, index)
		if err != nil {
			result.Invalid = append(result.Invalid, InvalidRow{Index: index, Reason: err.Error()})
			continue
		}
		result.Valid = append(result.Valid, normalized)
	}

	return result
}

func missingFields(fields map[string]string, required ...string) []string {
	var missing []string
	for _, field := range required {
		if strings.TrimSpace(fields[field]) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

func requiredErr(missing []string, index int) error {
	return fmt.Errorf("missing required field(s) %s in row %d",
		strings.Join(missing, ", "), index)
}

// currencyCleaner drops currency symbols, thousands separators and spaces
// before numeric parsing.
var currencyCleaner = strings.NewReplacer("₪", "", "$", "", "€", "", ",", "", " ", "")

func parseMoney(raw string) (float64, error) {
	cleaned := currencyCleaner.Replace(strings.TrimSpace(raw))
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return value, nil
}

// parseOptionalNumber coerces rooms/floor/size style cells, dropping the
// value silently when it is not numeric.
func parseOptionalNumber(raw string) (float64, bool) {
	value, err := parseMoney(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

func validateLeadRow(fields map[string]string, custom map[string]any, index int) (NormalizedRow, error) {
	if missing := missingFields(fields, FieldName, FieldPhone); len(missing) > 0 {
		return NormalizedRow{}, requiredErr(missing, index)
	}

	lead := &schemas.Lead{
		Name:   strings.TrimSpace(fields[FieldName]),
		Phone:  utils.NormalizePhone(fields[FieldPhone]),
		Email:  strings.ToLower(strings.TrimSpace(fields[FieldEmail])),
		Status: schemas.LEAD_STATUS_NEW,
		Notes:  fields[FieldNotes],
	}

	lead.Type = schemas.LEAD_TYPE_BUYER
	if normalized, ok := lookupSynonym(leadTypeSynonyms, fields[FieldType]); ok {
		lead.Type = normalized
	}

	if city := strings.TrimSpace(fields[FieldCity]); city != "" {
		lead.Requirements.DesiredCities = []string{city}
	}
	if budget, ok := parseOptionalNumber(fields[FieldBudget]); ok && budget > 0 {
		lead.Requirements.MaxBudget = budget
	}
	if rooms, ok := parseOptionalNumber(fields[FieldRooms]); ok && rooms > 0 {
		lead.Requirements.MinRooms = rooms
	}

	if len(custom) > 0 {
		lead.CustomData = custom
	}

	return NormalizedRow{Index: index, Lead: lead}, nil
}

func buildProperty(fields map[string]string, custom map[string]any, index int) (*schemas.Property, error) {
	if missing := missingFields(fields, FieldAddress, FieldPrice); len(missing) > 0 {
		return nil, requiredErr(missing, index)
	}

	price, err := parseMoney(fields[FieldPrice])
	if err != nil {
		return nil, fmt.Errorf("invalid price in row %d: %v", index, err)
	}
	if price <= 0 {
		return nil, fmt.Errorf("invalid price in row %d: must be greater than zero", index)
	}

	property := &schemas.Property{
		Address:    strings.TrimSpace(fields[FieldAddress]),
		City:       strings.TrimSpace(fields[FieldCity]),
		Price:      price,
		Status:     schemas.PROPERTY_STATUS_ACTIVE,
		Kind:       strings.TrimSpace(fields[FieldKind]),
		OwnerName:  strings.TrimSpace(fields[FieldOwnerName]),
		OwnerPhone: utils.NormalizePhone(fields[FieldOwnerPhone]),
		Notes:      fields[FieldNotes],
	}

	// Free text that is not a recognizable transaction type is almost
	// always the property kind typed into the wrong column.
	property.Type = schemas.PROPERTY_TYPE_SALE
	if rawType := strings.TrimSpace(fields[FieldType]); rawType != "" {
		if normalized, ok := lookupSynonym(transactionSynonyms, rawType); ok {
			property.Type = normalized
		} else if property.Kind == "" {
			property.Kind = rawType
		}
	}
	if property.Kind == "" {
		property.Kind = "apartment"
	}

	if rooms, ok := parseOptionalNumber(fields[FieldRooms]); ok && rooms > 0 {
		property.Rooms = rooms
	}
	if floor, ok := parseOptionalNumber(fields[FieldFloor]); ok {
		property.Floor = int(floor)
	}
	if size, ok := parseOptionalNumber(fields[FieldSize]); ok && size > 0 {
		property.Size = size
	}

	if len(custom) > 0 {
		property.CustomData = custom
	}

	return property, nil
}

func validatePropertyRow(fields map[string]string, custom map[string]any, index int) (NormalizedRow, error) {
	property, err := buildProperty(fields, custom, index)
	if err != nil {
		return NormalizedRow{}, err
	}
	return NormalizedRow{Index: index, Property: property}, nil
}

func validateAgentRow(fields map[string]string, custom map[string]any, index int) (NormalizedRow, error) {
	if missing := missingFields(fields, FieldName, FieldEmail); len(missing) > 0 {
		return NormalizedRow{}, requiredErr(missing, index)
	}

	email := strings.ToLower(strings.TrimSpace(fields[FieldEmail]))
	if !emailPattern.MatchString(email) {
		return NormalizedRow{}, fmt.Errorf("invalid email %q in row %d", fields[FieldEmail], index)
	}

	role := schemas.ROLE_AGENT
	if strings.EqualFold(strings.TrimSpace(fields[FieldRole]), schemas.ROLE_ADMIN) {
		role = schemas.ROLE_ADMIN
	}

	agent := &schemas.AppUser{
		Name:    strings.TrimSpace(fields[FieldName]),
		Email:   email,
		Phone:   utils.NormalizePhone(fields[FieldPhone]),
		Role:    role,
		Pending: true,
	}

	return NormalizedRow{Index: index, Agent: agent}, nil
}

func validateDealRow(fields map[string]string, custom map[string]any, index int) (NormalizedRow, error) {
	if missing := missingFields(fields, FieldProperty, FieldPrice, FieldStage, FieldCommission); len(missing) > 0 {
		return NormalizedRow{}, requiredErr(missing, index)
	}

	price, err := parseMoney(fields[FieldPrice])
	if err != nil || price < 0 {
		return NormalizedRow{}, fmt.Errorf("invalid price in row %d: must be a non-negative number", index)
	}

	commission, err := parseMoney(fields[FieldCommission])
	if err != nil || commission < 0 {
		return NormalizedRow{}, fmt.Errorf("invalid commission in row %d: must be a non-negative number", index)
	}

	stage := schemas.DEAL_STAGE_QUALIFICATION
	if normalized, ok := lookupSynonym(stageSynonyms, fields[FieldStage]); ok {
		stage = normalized
	}

	deal := &schemas.Deal{
		PropertyName:        strings.TrimSpace(fields[FieldProperty]),
		LeadName:            strings.TrimSpace(fields[FieldLeadName]),
		LeadPhone:           utils.NormalizePhone(fields[FieldLeadPhone]),
		Price:               price,
		ProjectedCommission: commission,
		Stage:               stage,
	}

	if probability, ok := parseOptionalNumber(fields[FieldProbability]); ok {
		deal.Probability = min(max(int(probability), 0), 100)
	}

	if len(custom) > 0 {
		deal.CustomData = custom
	}

	return NormalizedRow{Index: index, Deal: deal}, nil
}

// validateCombinedRow imports seller files: every row yields the owner as a
// seller lead plus their property.
func validateCombinedRow(fields map[string]string, custom map[string]any, index int) (NormalizedRow, error) {
	if missing := missingFields(fields, FieldName, FieldPhone); len(missing) > 0 {
		return NormalizedRow{}, requiredErr(missing, index)
	}

	property, err := buildProperty(fields, custom, index)
	if err != nil {
		return NormalizedRow{}, err
	}

	lead := &schemas.Lead{
		Name:   strings.TrimSpace(fields[FieldName]),
		Phone:  utils.NormalizePhone(fields[FieldPhone]),
		Email:  strings.ToLower(strings.TrimSpace(fields[FieldEmail])),
		Status: schemas.LEAD_STATUS_NEW,
		Notes:  fields[FieldNotes],
	}

	lead.Type = schemas.LEAD_TYPE_SELLER
	if normalized, ok := lookupSynonym(leadTypeSynonyms, fields[FieldType]); ok {
		lead.Type = normalized
	}

	if property.OwnerName == "" {
		property.OwnerName = lead.Name
	}
	if property.OwnerPhone == "" {
		property.OwnerPhone = lead.Phone
	}

	return NormalizedRow{Index: index, Lead: lead, Property: property}, nil
}
