package importer

import "fmt"

// EntityType selects which import profile (dictionary, validator, natural
// key) a job runs with.
type EntityType int

const (
	EntityLead EntityType = iota
	EntityProperty
	EntityAgent
	EntityDeal
	// EntityCombined imports one lead plus one property per source row
	// (seller files exported from listing sites).
	EntityCombined
)

func (e EntityType) String() string {
	switch e {
	case EntityLead:
		return "lead"
	case EntityProperty:
		return "property"
	case EntityAgent:
		return "agent"
	case EntityDeal:
		return "deal"
	case EntityCombined:
		return "combined"
	}
	return "unknown"
}

func ParseEntityType(s string) (EntityType, error) {
	switch s {
	case "lead":
		return EntityLead, nil
	case "property":
		return EntityProperty, nil
	case "agent":
		return EntityAgent, nil
	case "deal":
		return EntityDeal, nil
	case "combined":
		return EntityCombined, nil
	}
	return 0, fmt.Errorf("unknown entity type %q", s)
}

// DuplicateStrategy decides what happens when a row's natural key already
// exists in the store.
type DuplicateStrategy int

const (
	// StrategySkip drops rows whose natural key already exists. Default.
	StrategySkip DuplicateStrategy = iota
	// StrategyUpdate overwrites the existing document with the new fields.
	StrategyUpdate
	// StrategyAlwaysCreate inserts without any existence check.
	StrategyAlwaysCreate
)

func (s DuplicateStrategy) String() string {
	switch s {
	case StrategySkip:
		return "skip"
	case StrategyUpdate:
		return "update"
	case StrategyAlwaysCreate:
		return "always_create"
	}
	return "unknown"
}

func ParseDuplicateStrategy(s string) (DuplicateStrategy, error) {
	switch s {
	case "", "skip":
		return StrategySkip, nil
	case "update":
		return StrategyUpdate, nil
	case "always_create":
		return StrategyAlwaysCreate, nil
	}
	return 0, fmt.Errorf("unknown duplicate strategy %q", s)
}
