package matchmaking

import (
	"testing"

	"api/schemas"

	"github.com/stretchr/testify/require"
)

func activeProperty(city string, price float64) schemas.Property {
	return schemas.Property{
		City:   city,
		Price:  price,
		Status: schemas.PROPERTY_STATUS_ACTIVE,
	}
}

func TestScorePropertiesHardFilters(t *testing.T) {
	lead := schemas.Lead{
		Requirements: schemas.LeadRequirements{
			MaxBudget:     2000000,
			DesiredCities: []string{"תל אביב"},
		},
	}

	sold := activeProperty("תל אביב", 1800000)
	sold.Status = schemas.PROPERTY_STATUS_SOLD

	properties := []schemas.Property{
		activeProperty("תל אביב", 1800000),
		activeProperty("תל אביב", 2500000), // over budget
		activeProperty("חיפה", 1500000),    // wrong city
		sold,
	}

	matches := ScoreProperties(lead, properties)
	require.Len(t, matches, 1)
	require.Equal(t, 1800000.0, matches[0].Property.Price)
}

func TestScorePropertiesCityMatchIsCaseInsensitive(t *testing.T) {
	lead := schemas.Lead{
		Requirements: schemas.LeadRequirements{DesiredCities: []string{" tel aviv "}},
	}

	matches := ScoreProperties(lead, []schemas.Property{activeProperty("Tel Aviv", 1000000)})
	require.Len(t, matches, 1)
}

func TestScorePropertiesSoftCriteriaRatio(t *testing.T) {
	lead := schemas.Lead{
		Requirements: schemas.LeadRequirements{
			MinRooms: 4,
			MinSize:  100,
		},
	}

	full := activeProperty("חיפה", 2000000)
	full.Rooms = 4.5
	full.Size = 120

	half := activeProperty("חיפה", 2000000)
	half.Rooms = 4
	half.Size = 80

	matches := ScoreProperties(lead, []schemas.Property{half, full})
	require.Len(t, matches, 2)

	require.Equal(t, 1.0, matches[0].Score)
	require.ElementsMatch(t, []string{"rooms", "size"}, matches[0].Reasons)

	require.Equal(t, 0.5, matches[1].Score)
	require.Equal(t, []string{"rooms"}, matches[1].Reasons)
}

func TestScorePropertiesBudgetHeadroom(t *testing.T) {
	lead := schemas.Lead{
		Requirements: schemas.LeadRequirements{MaxBudget: 2000000},
	}

	comfortable := activeProperty("חיפה", 1800000)
	atTheEdge := activeProperty("חיפה", 2000000)

	matches := ScoreProperties(lead, []schemas.Property{atTheEdge, comfortable})
	require.Len(t, matches, 2)
	require.Equal(t, 1800000.0, matches[0].Property.Price)
	require.Equal(t, 1.0, matches[0].Score)
	require.Equal(t, 0.0, matches[1].Score)
}

func TestScorePropertiesNoSoftCriteria(t *testing.T) {
	lead := schemas.Lead{}

	matches := ScoreProperties(lead, []schemas.Property{activeProperty("חיפה", 900000)})
	require.Len(t, matches, 1)
	require.Equal(t, 1.0, matches[0].Score)
	require.Empty(t, matches[0].Reasons)
}

func TestScorePropertiesAmenities(t *testing.T) {
	lead := schemas.Lead{
		Requirements: schemas.LeadRequirements{
			Amenities: map[string]bool{"parking": true, "balcony": false},
		},
	}

	withParking := activeProperty("חיפה", 1000000)
	withParking.CustomData = map[string]any{"parking": true}

	parkingAsText := activeProperty("חיפה", 1000000)
	parkingAsText.CustomData = map[string]any{"parking": "yes"}

	without := activeProperty("חיפה", 1000000)

	matches := ScoreProperties(lead, []schemas.Property{withParking, parkingAsText, without})
	require.Len(t, matches, 2)
}
