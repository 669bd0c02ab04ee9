package importer

import "strings"

// Canonical field keys produced by the column mapper. Headers that match no
// dictionary entry map to FieldCustom and land in the custom_data bag.
const (
	FieldCustom = "_custom"

	FieldName        = "name"
	FieldPhone       = "phone"
	FieldEmail       = "email"
	FieldType        = "type"
	FieldStatus      = "status"
	FieldCity        = "city"
	FieldBudget      = "budget"
	FieldNotes       = "notes"
	FieldAddress     = "address"
	FieldPrice       = "price"
	FieldRooms       = "rooms"
	FieldFloor       = "floor"
	FieldSize        = "size"
	FieldKind        = "kind"
	FieldOwnerName   = "owner_name"
	FieldOwnerPhone  = "owner_phone"
	FieldRole        = "role"
	FieldStage       = "stage"
	FieldCommission  = "commission"
	FieldProbability = "probability"
	FieldProperty    = "property_name"
	FieldLeadName    = "lead_name"
	FieldLeadPhone   = "lead_phone"
)

// headerDictionaries maps header text, lowercased, to a canonical field key
// per entity type. Hebrew labels cover the spreadsheets agencies actually
// upload; English labels cover listing-site exports.
var headerDictionaries = map[EntityType]map[string]string{
	EntityLead: {
		"name": FieldName, "full name": FieldName, "שם": FieldName, "שם מלא": FieldName, "שם לקוח": FieldName,
		"phone": FieldPhone, "phone number": FieldPhone, "mobile": FieldPhone, "טלפון": FieldPhone, "נייד": FieldPhone, "פלאפון": FieldPhone,
		"email": FieldEmail, "mail": FieldEmail, "אימייל": FieldEmail, "מייל": FieldEmail, "דוא\"ל": FieldEmail,
		"type": FieldType, "lead type": FieldType, "סוג": FieldType, "סוג לקוח": FieldType,
		"status": FieldStatus, "סטטוס": FieldStatus,
		"city": FieldCity, "עיר": FieldCity, "אזור": FieldCity, "ישוב": FieldCity,
		"budget": FieldBudget, "max budget": FieldBudget, "תקציב": FieldBudget, "תקציב מקסימלי": FieldBudget,
		"rooms": FieldRooms, "חדרים": FieldRooms, "מספר חדרים": FieldRooms,
		"notes": FieldNotes, "comments": FieldNotes, "הערות": FieldNotes,
	},
	EntityProperty: {
		"address": FieldAddress, "street": FieldAddress, "כתובת": FieldAddress, "רחוב": FieldAddress,
		"city": FieldCity, "עיר": FieldCity, "ישוב": FieldCity,
		"price": FieldPrice, "מחיר": FieldPrice, "מחיר מבוקש": FieldPrice,
		"type": FieldType, "transaction": FieldType, "סוג עסקה": FieldType, "עסקה": FieldType,
		"kind": FieldKind, "property type": FieldKind, "סוג נכס": FieldKind,
		"rooms": FieldRooms, "חדרים": FieldRooms, "מספר חדרים": FieldRooms,
		"floor": FieldFloor, "קומה": FieldFloor,
		"size": FieldSize, "sqm": FieldSize, "שטח": FieldSize, "גודל": FieldSize, "מ\"ר": FieldSize,
		"status": FieldStatus, "סטטוס": FieldStatus,
		"owner": FieldOwnerName, "owner name": FieldOwnerName, "בעלים": FieldOwnerName, "שם בעלים": FieldOwnerName,
		"owner phone": FieldOwnerPhone, "טלפון בעלים": FieldOwnerPhone,
		"notes": FieldNotes, "הערות": FieldNotes,
	},
	EntityAgent: {
		"name": FieldName, "שם": FieldName, "שם מלא": FieldName,
		"email": FieldEmail, "mail": FieldEmail, "אימייל": FieldEmail, "מייל": FieldEmail,
		"phone": FieldPhone, "טלפון": FieldPhone, "נייד": FieldPhone,
		"role": FieldRole, "תפקיד": FieldRole, "הרשאה": FieldRole,
	},
	EntityDeal: {
		"property": FieldProperty, "property name": FieldProperty, "נכס": FieldProperty, "שם נכס": FieldProperty, "כתובת": FieldProperty,
		"lead": FieldLeadName, "client": FieldLeadName, "לקוח": FieldLeadName, "שם לקוח": FieldLeadName,
		"lead phone": FieldLeadPhone, "client phone": FieldLeadPhone, "טלפון לקוח": FieldLeadPhone, "טלפון": FieldLeadPhone,
		"price": FieldPrice, "מחיר": FieldPrice, "סכום": FieldPrice,
		"stage": FieldStage, "שלב": FieldStage, "סטטוס": FieldStage,
		"commission": FieldCommission, "עמלה": FieldCommission, "עמלה צפויה": FieldCommission,
		"probability": FieldProbability, "הסתברות": FieldProbability, "סיכוי": FieldProbability,
		"notes": FieldNotes, "הערות": FieldNotes,
	},
}

func init() {
	// Combined rows interleave lead and property columns in one sheet;
	// property keys win on collisions, the discriminator decides per row.
	combined := map[string]string{}
	for header, field := range headerDictionaries[EntityLead] {
		combined[header] = field
	}
	for header, field := range headerDictionaries[EntityProperty] {
		combined[header] = field
	}
	headerDictionaries[EntityCombined] = combined
}

// transactionSynonyms normalizes free-text transaction types to
// sale/rent. Text matching none of these is relocated to the kind field.
var transactionSynonyms = map[string]string{
	"sale": "sale", "for sale": "sale", "sell": "sale",
	"מכירה": "sale", "למכירה": "sale",
	"rent": "rent", "rental": "rent", "for rent": "rent", "lease": "rent",
	"השכרה": "rent", "להשכרה": "rent", "שכירות": "rent",
}

// leadTypeSynonyms normalizes buyer/seller labels.
var leadTypeSynonyms = map[string]string{
	"buyer": "buyer", "buy": "buyer", "קונה": "buyer", "רוכש": "buyer", "מחפש": "buyer",
	"seller": "seller", "sell": "seller", "מוכר": "seller", "בעלים": "seller", "משכיר": "seller",
}

// stageSynonyms normalizes free-text pipeline stage labels to the
// canonical identifiers. Unrecognized labels fall back to qualification.
var stageSynonyms = map[string]string{
	"qualification": "qualification", "qualified": "qualification", "new": "qualification",
	"אפיון": "qualification", "בירור": "qualification", "חדש": "qualification",
	"viewing": "viewing", "showing": "viewing", "tour": "viewing",
	"סיור": "viewing", "צפייה": "viewing", "הצגת נכס": "viewing",
	"offer": "offer", "הצעה": "offer", "הצעת מחיר": "offer",
	"negotiation": "negotiation", "משא ומתן": "negotiation", "מו\"מ": "negotiation",
	"contract": "contract", "signing": "contract", "חוזה": "contract", "חתימה": "contract",
	"won": "won", "closed": "won", "closed won": "won", "נסגר": "won", "עסקה נסגרה": "won",
	"lost": "lost", "closed lost": "lost", "אבוד": "lost", "בוטל": "lost",
}

// Discriminator keyword sets for mixed files: a row whose discriminator
// cell matches a seller keyword is treated as a property row.
var (
	buyerKeywords  = []string{"buyer", "buy", "לקוח", "קונה", "רוכש", "מחפש"}
	sellerKeywords = []string{"seller", "sell", "owner", "נכס", "מוכר", "בעלים", "משכיר"}
)

func lookupSynonym(table map[string]string, raw string) (string, bool) {
	normalized, ok := table[strings.ToLower(strings.TrimSpace(raw))]
	return normalized, ok
}

func matchesKeyword(raw string, keywords []string) bool {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, kw := range keywords {
		if value == kw {
			return true
		}
	}
	return false
}
