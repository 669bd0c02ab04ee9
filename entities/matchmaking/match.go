package matchmaking

import (
	"api/schemas"
	"sort"
	"strings"
)

// Match is one scored lead/property pairing.
type Match struct {
	Property schemas.Property `json:"property"`
	Score    float64          `json:"score"`
	Reasons  []string         `json:"reasons,omitempty"`
}

// strongMatchScore is the score from which a match is worth an alert.
const strongMatchScore = 0.75

// ScoreProperties ranks active properties against a lead's requirements.
// Budget, city and amenities are hard filters; rooms, floor and size
// contribute to the score when the lead constrained them.
func ScoreProperties(lead schemas.Lead, properties []schemas.Property) []Match {
	req := lead.Requirements
	var matches []Match

	for _, property := range properties {
		if property.Status != schemas.PROPERTY_STATUS_ACTIVE {
			continue
		}
		if req.MaxBudget > 0 && property.Price > req.MaxBudget {
			continue
		}
		if len(req.DesiredCities) > 0 && !cityWanted(property.City, req.DesiredCities) {
			continue
		}
		if !hasAmenities(property, req.Amenities) {
			continue
		}

		score, reasons := scoreSoftCriteria(req, property)
		matches = append(matches, Match{Property: property, Score: score, Reasons: reasons})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

func scoreSoftCriteria(req schemas.LeadRequirements, property schemas.Property) (float64, []string) {
	total, hit := 0.0, 0.0
	var reasons []string

	check := func(name string, satisfied bool) {
		total++
		if satisfied {
			hit++
			reasons = append(reasons, name)
		}
	}

	if req.MinRooms > 0 || req.MaxRooms > 0 {
		ok := property.Rooms >= req.MinRooms
		if req.MaxRooms > 0 {
			ok = ok && property.Rooms <= req.MaxRooms
		}
		check("rooms", ok)
	}
	if req.MinFloor > 0 || req.MaxFloor > 0 {
		ok := property.Floor >= req.MinFloor
		if req.MaxFloor > 0 {
			ok = ok && property.Floor <= req.MaxFloor
		}
		check("floor", ok)
	}
	if req.MinSize > 0 {
		check("size", property.Size >= req.MinSize)
	}
	if req.MaxBudget > 0 {
		// Reward prices comfortably inside the budget, not only under it.
		check("price", property.Price <= req.MaxBudget*0.95)
	}

	if total == 0 {
		// Nothing beyond the hard filters was asked for.
		return 1.0, nil
	}
	return hit / total, reasons
}

func cityWanted(city string, desired []string) bool {
	for _, want := range desired {
		if strings.EqualFold(strings.TrimSpace(want), strings.TrimSpace(city)) {
			return true
		}
	}
	return false
}

// hasAmenities checks the amenity booleans the lead insists on against the
// property's custom data flags.
func hasAmenities(property schemas.Property, required map[string]bool) bool {
	for amenity, must := range required {
		if !must {
			continue
		}
		flag, ok := property.CustomData[amenity]
		if !ok {
			return false
		}
		switch v := flag.(type) {
		case bool:
			if !v {
				return false
			}
		case string:
			if !strings.EqualFold(v, "true") && v != "1" && !strings.EqualFold(v, "yes") {
				return false
			}
		default:
			return false
		}
	}
	return true
}
