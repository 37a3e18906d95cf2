package lead

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/field-service-api/internal/models"
)

func TestEstimatePrice(t *testing.T) {
	tests := []struct {
		service  ServiceType
		urgency  Urgency
		property string
		want     float64
	}{
		{ServiceElectrical, UrgencyEmergency, "commercial-office", 315.00},
		{ServiceElectrical, UrgencyStandard, "residential", 150.00},
		{ServicePlumbing, UrgencyUrgent, "residential", 162.50},
		{ServicePlumbing, UrgencyUrgent, "industrial", 227.50},
		{ServiceBoth, UrgencyFlexible, "apartment", 250.00},
		{ServiceBoth, UrgencyEmergency, "commercial", 525.00},
		{ServiceBoth, UrgencyEmergency, "Commercial", 375.00},
		{ServicePlumbing, UrgencyUrgent, " industrial", 162.50},
		{ServicePlumbing, UrgencyStandard, "industrial-park", 130.00},
	}

	for _, tt := range tests {
		t.Run(string(tt.service)+"/"+string(tt.urgency)+"/"+tt.property, func(t *testing.T) {
			assert.InDelta(t, tt.want, EstimatePrice(tt.service, tt.urgency, tt.property), 0.0001)
		})
	}
}

func TestPriorityUsesLiteralFormula(t *testing.T) {
	urgent := Priority(UrgencyUrgent, 200)
	standard := Priority(UrgencyStandard, 1000)

	assert.Equal(t, 70, urgent)
	assert.Equal(t, 125, standard)
	assert.Greater(t, standard, urgent)

	assert.Equal(t, 131, Priority(UrgencyEmergency, 315))
	assert.Equal(t, 0, Priority(UrgencyFlexible, 9.99))
}

func TestSortQueue(t *testing.T) {
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	leads := []models.Lead{
		{ID: 1, Priority: 70, CreatedAt: base},
		{ID: 2, Priority: 125, CreatedAt: base.Add(time.Hour)},
		{ID: 3, Priority: 70, CreatedAt: base.Add(-time.Hour)},
		{ID: 4, Priority: 40, CreatedAt: base.Add(-2 * time.Hour)},
	}

	SortQueue(leads)

	var ids []uint
	for _, l := range leads {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []uint{2, 3, 1, 4}, ids)
}

func TestPickTechnician(t *testing.T) {
	users := []models.User{
		{ID: 1, Role: "owner"},
		{ID: 5, Role: "technician"},
		{ID: 3, Role: "technician"},
	}

	tech, err := PickTechnician(users)
	require.NoError(t, err)
	assert.Equal(t, uint(5), tech.ID)

	_, err = PickTechnician([]models.User{{Role: "admin"}})
	assert.ErrorIs(t, err, ErrNoTechnicians)
}
