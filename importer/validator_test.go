package importer

import (
	"testing"

	"api/schemas"

	"github.com/stretchr/testify/require"
)

func leadTable(rows ...Row) *Table {
	return &Table{Headers: []string{"שם", "טלפון", "עיר"}, Rows: rows}
}

func TestValidateHebrewLeadRow(t *testing.T) {
	table := leadTable(Row{"שם": "דנה כהן", "טלפון": "050-123-4567", "עיר": "תל אביב"})
	mapping := AutoMap(table.Headers, EntityLead)

	result := Validate(table, mapping, EntityLead, "")

	require.Empty(t, result.Invalid)
	require.Len(t, result.Valid, 1)

	lead := result.Valid[0].Lead
	require.NotNil(t, lead)
	require.Equal(t, "דנה כהן", lead.Name)
	require.Equal(t, "0501234567", lead.Phone)
	require.Equal(t, schemas.LEAD_TYPE_BUYER, lead.Type)
	require.Equal(t, schemas.LEAD_STATUS_NEW, lead.Status)
	require.Equal(t, []string{"תל אביב"}, lead.Requirements.DesiredCities)
}

func TestValidateLeadMissingPhone(t *testing.T) {
	table := leadTable(
		Row{"שם": "דנה כהן", "טלפון": "0501234567"},
		Row{"שם": "יוסי לוי", "טלפון": ""},
	)
	mapping := AutoMap(table.Headers, EntityLead)

	result := Validate(table, mapping, EntityLead, "")

	require.Len(t, result.Valid, 1)
	require.Len(t, result.Invalid, 1)
	require.Equal(t, 3, result.Invalid[0].Index)
	require.Contains(t, result.Invalid[0].Reason, "phone")
	require.Contains(t, result.Invalid[0].Reason, "row 3")
}

func TestValidateLeadBudgetAndType(t *testing.T) {
	table := &Table{
		Headers: []string{"שם", "טלפון", "תקציב", "סוג"},
		Rows:    []Row{{"שם": "רון", "טלפון": "0521112233", "תקציב": "₪1,200,000", "סוג": "מוכר"}},
	}
	mapping := AutoMap(table.Headers, EntityLead)

	result := Validate(table, mapping, EntityLead, "")

	require.Len(t, result.Valid, 1)
	lead := result.Valid[0].Lead
	require.Equal(t, schemas.LEAD_TYPE_SELLER, lead.Type)
	require.Equal(t, 1200000.0, lead.Requirements.MaxBudget)
}

func TestValidatePropertyRow(t *testing.T) {
	table := &Table{
		Headers: []string{"כתובת", "עיר", "מחיר", "חדרים", "קומה", "סוג עסקה"},
		Rows: []Row{
			{"כתובת": "הרצל 10", "עיר": "חיפה", "מחיר": "2,500,000 ₪", "חדרים": "4", "קומה": "3", "סוג עסקה": "להשכרה"},
		},
	}
	mapping := AutoMap(table.Headers, EntityProperty)

	result := Validate(table, mapping, EntityProperty, "")

	require.Empty(t, result.Invalid)
	property := result.Valid[0].Property
	require.NotNil(t, property)
	require.Equal(t, "הרצל 10", property.Address)
	require.Equal(t, 2500000.0, property.Price)
	require.Equal(t, 4.0, property.Rooms)
	require.Equal(t, 3, property.Floor)
	require.Equal(t, schemas.PROPERTY_TYPE_RENT, property.Type)
	require.Equal(t, "apartment", property.Kind)
	require.Equal(t, schemas.PROPERTY_STATUS_ACTIVE, property.Status)
}

func TestValidatePropertyRejectsNonPositivePrice(t *testing.T) {
	table := &Table{
		Headers: []string{"address", "price"},
		Rows: []Row{
			{"address": "Main St 1", "price": "0"},
			{"address": "Main St 2", "price": "free"},
		},
	}
	mapping := AutoMap(table.Headers, EntityProperty)

	result := Validate(table, mapping, EntityProperty, "")

	require.Empty(t, result.Valid)
	require.Len(t, result.Invalid, 2)
	require.Contains(t, result.Invalid[0].Reason, "price")
}

func TestValidatePropertyRelocatesKindTypo(t *testing.T) {
	// Free text in the transaction column that is not a transaction type
	// is kept as the property kind.
	table := &Table{
		Headers: []string{"address", "price", "type"},
		Rows:    []Row{{"address": "Dizengoff 5", "price": "1800000", "type": "פנטהאוז"}},
	}
	mapping := AutoMap(table.Headers, EntityProperty)

	result := Validate(table, mapping, EntityProperty, "")

	require.Len(t, result.Valid, 1)
	property := result.Valid[0].Property
	require.Equal(t, schemas.PROPERTY_TYPE_SALE, property.Type)
	require.Equal(t, "פנטהאוז", property.Kind)
}

func TestValidateAgentRow(t *testing.T) {
	table := &Table{
		Headers: []string{"name", "email", "role"},
		Rows: []Row{
			{"name": "Rina Bar", "email": "Rina@Agency.co.il", "role": "Admin"},
			{"name": "Bad Mail", "email": "not-an-email", "role": ""},
		},
	}
	mapping := AutoMap(table.Headers, EntityAgent)

	result := Validate(table, mapping, EntityAgent, "")

	require.Len(t, result.Valid, 1)
	require.Len(t, result.Invalid, 1)

	agent := result.Valid[0].Agent
	require.Equal(t, "rina@agency.co.il", agent.Email)
	require.Equal(t, schemas.ROLE_ADMIN, agent.Role)
	require.True(t, agent.Pending)
	require.Contains(t, result.Invalid[0].Reason, "email")
}

func TestValidateDealRow(t *testing.T) {
	table := &Table{
		Headers: []string{"נכס", "לקוח", "מחיר", "שלב", "עמלה", "סיכוי"},
		Rows: []Row{
			{"נכס": "הרצל 10, חיפה", "לקוח": "דנה", "מחיר": "2,000,000", "שלב": "מו\"מ", "עמלה": "40,000", "סיכוי": "250"},
		},
	}
	mapping := AutoMap(table.Headers, EntityDeal)

	result := Validate(table, mapping, EntityDeal, "")

	require.Empty(t, result.Invalid)
	deal := result.Valid[0].Deal
	require.Equal(t, schemas.DEAL_STAGE_NEGOTIATION, deal.Stage)
	require.Equal(t, 2000000.0, deal.Price)
	require.Equal(t, 40000.0, deal.ProjectedCommission)
	require.Equal(t, 100, deal.Probability)
}

func TestValidateDealUnknownStageDefaultsToQualification(t *testing.T) {
	table := &Table{
		Headers: []string{"property", "price", "stage", "commission"},
		Rows:    []Row{{"property": "Main St 1", "price": "1000000", "stage": "somewhere", "commission": "20000"}},
	}
	mapping := AutoMap(table.Headers, EntityDeal)

	result := Validate(table, mapping, EntityDeal, "")

	require.Len(t, result.Valid, 1)
	require.Equal(t, schemas.DEAL_STAGE_QUALIFICATION, result.Valid[0].Deal.Stage)
}

func TestValidateCombinedRowProducesLeadAndProperty(t *testing.T) {
	table := &Table{
		Headers: []string{"שם", "טלפון", "כתובת", "עיר", "מחיר"},
		Rows: []Row{
			{"שם": "אבי מזרחי", "טלפון": "0539998877", "כתובת": "ביאליק 7", "עיר": "רמת גן", "מחיר": "3,100,000"},
		},
	}
	mapping := AutoMap(table.Headers, EntityCombined)

	result := Validate(table, mapping, EntityCombined, "")

	require.Empty(t, result.Invalid)
	row := result.Valid[0]
	require.Equal(t, 2, row.DocsPerRow())

	require.Equal(t, schemas.LEAD_TYPE_SELLER, row.Lead.Type)
	require.Equal(t, "0539998877", row.Lead.Phone)

	require.Equal(t, "ביאליק 7", row.Property.Address)
	require.Equal(t, "אבי מזרחי", row.Property.OwnerName)
	require.Equal(t, "0539998877", row.Property.OwnerPhone)
}

func TestValidateCombinedWithDiscriminator(t *testing.T) {
	table := &Table{
		Headers: []string{"שם", "טלפון", "כתובת", "מחיר", "סוג"},
		Rows: []Row{
			{"שם": "קונה אחד", "טלפון": "0501111111", "סוג": "קונה"},
			{"שם": "מוכר אחד", "טלפון": "0502222222", "כתובת": "העצמאות 2", "מחיר": "1,900,000", "סוג": "מוכר"},
		},
	}
	mapping := AutoMap(table.Headers, EntityCombined)

	result := Validate(table, mapping, EntityCombined, "סוג")

	require.Empty(t, result.Invalid)
	require.Len(t, result.Valid, 2)

	buyer := result.Valid[0]
	require.NotNil(t, buyer.Lead)
	require.Nil(t, buyer.Property)

	seller := result.Valid[1]
	require.NotNil(t, seller.Lead)
	require.NotNil(t, seller.Property)
}

func TestValidateCombinedRejectsUnknownDiscriminator(t *testing.T) {
	table := &Table{
		Headers: []string{"שם", "טלפון", "כתובת", "מחיר", "סוג"},
		Rows: []Row{
			{"שם": "קונה אחד", "טלפון": "0501111111", "סוג": "קונה"},
			{"שם": "לא ברור", "טלפון": "0503333333", "כתובת": "העצמאות 3", "מחיר": "1,500,000", "סוג": "שכירות"},
		},
	}
	mapping := AutoMap(table.Headers, EntityCombined)

	result := Validate(table, mapping, EntityCombined, "סוג")

	require.Len(t, result.Valid, 1)
	require.Len(t, result.Invalid, 1)
	require.Equal(t, 3, result.Invalid[0].Index)
	require.Contains(t, result.Invalid[0].Reason, "שכירות")
}

func TestParseMoney(t *testing.T) {
	value, err := parseMoney("₪2,500,000")
	require.NoError(t, err)
	require.Equal(t, 2500000.0, value)

	value, err = parseMoney(" 1 200 000 ")
	require.NoError(t, err)
	require.Equal(t, 1200000.0, value)

	_, err = parseMoney("שניים")
	require.Error(t, err)
}
