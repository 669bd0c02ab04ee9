package importer

import (
	"api/database"
	"api/utils"
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ExistingIndex maps a natural key to the id of the document already
// holding it. It is built once per import job with a single bulk query.
type ExistingIndex map[string]bson.ObjectID

// LeadNaturalKey is the exact phone string after normalization.
func LeadNaturalKey(phone string) string {
	return utils.NormalizePhone(phone)
}

// PropertyNaturalKey is the case-insensitive trimmed address|city composite.
func PropertyNaturalKey(address, city string) string {
	return strings.ToLower(strings.TrimSpace(address)) + "|" + strings.ToLower(strings.TrimSpace(city))
}

// NaturalKey returns the dedupe key for a normalized row. Agents and deals
// have none: agents dedupe on invite by email server-side, deals always
// insert. Combined rows key on their property.
func NaturalKey(entity EntityType, row NormalizedRow) string {
	switch entity {
	case EntityLead:
		return LeadNaturalKey(row.Lead.Phone)
	case EntityProperty, EntityCombined:
		// Discriminated combined rows may carry no property; those
		// always insert.
		if row.Property == nil {
			return ""
		}
		return PropertyNaturalKey(row.Property.Address, row.Property.City)
	}
	return ""
}

// FetchExistingIndex loads every natural key the agency already has for the
// entity. One query per job; fine for the few thousand documents a single
// agency holds, revisit if agencies outgrow that.
func FetchExistingIndex(ctx context.Context, agencyID string, entity EntityType) (ExistingIndex, error) {
	index := ExistingIndex{}

	switch entity {
	case EntityLead:
		collection, err := database.Collection(database.COLLECTION_LEADS)
		if err != nil {
			return nil, err
		}
		filter := bson.D{{Key: "agency_id", Value: agencyID}}
		projection := options.Find().SetProjection(bson.D{{Key: "phone", Value: 1}})
		cursor, err := collection.Find(ctx, filter, projection)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var docs []struct {
			ID    bson.ObjectID `bson:"_id"`
			Phone string        `bson:"phone"`
		}
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, err
		}
		for _, doc := range docs {
			if key := LeadNaturalKey(doc.Phone); key != "" {
				index[key] = doc.ID
			}
		}

	case EntityProperty, EntityCombined:
		collection, err := database.Collection(database.COLLECTION_PROPS)
		if err != nil {
			return nil, err
		}
		filter := bson.D{{Key: "agency_id", Value: agencyID}}
		projection := options.Find().SetProjection(bson.D{
			{Key: "address", Value: 1},
			{Key: "city", Value: 1},
		})
		cursor, err := collection.Find(ctx, filter, projection)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var docs []struct {
			ID      bson.ObjectID `bson:"_id"`
			Address string        `bson:"address"`
			City    string        `bson:"city"`
		}
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, err
		}
		for _, doc := range docs {
			index[PropertyNaturalKey(doc.Address, doc.City)] = doc.ID
		}
	}

	return index, nil
}

// Decision is the per-row outcome of duplicate resolution.
type Decision int

const (
	DecisionInsert Decision = iota
	DecisionUpdate
	DecisionSkip
)

// ResolveDuplicate applies the job strategy to one row's natural key.
// Skipped duplicates are a designed branch, not an error.
func ResolveDuplicate(strategy DuplicateStrategy, key string, existing ExistingIndex) (Decision, bson.ObjectID) {
	if strategy == StrategyAlwaysCreate || key == "" {
		return DecisionInsert, bson.ObjectID{}
	}

	existingID, found := existing[key]
	if !found {
		return DecisionInsert, bson.ObjectID{}
	}

	if strategy == StrategyUpdate {
		return DecisionUpdate, existingID
	}
	return DecisionSkip, bson.ObjectID{}
}
