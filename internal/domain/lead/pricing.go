package lead

import (
	"math"
	"strings"
)

type ServiceType string

const (
	ServiceElectrical ServiceType = "electrical"
	ServicePlumbing   ServiceType = "plumbing"
	ServiceBoth       ServiceType = "both"
)

type Urgency string

const (
	UrgencyEmergency Urgency = "emergency"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyStandard  Urgency = "standard"
	UrgencyFlexible  Urgency = "flexible"
)

var basePrice = map[ServiceType]float64{
	ServiceElectrical: 150,
	ServicePlumbing:   130,
	ServiceBoth:       250,
}

var urgencyWeight = map[Urgency]int{
	UrgencyEmergency: 100,
	UrgencyUrgent:    50,
	UrgencyStandard:  25,
	UrgencyFlexible:  0,
}

func (s ServiceType) Valid() bool {
	_, ok := basePrice[s]
	return ok
}

func (u Urgency) Valid() bool {
	_, ok := urgencyWeight[u]
	return ok
}

// EstimatePrice returns the quoted starting price for a job, rounded to cents.
func EstimatePrice(service ServiceType, urgency Urgency, propertyType string) float64 {
	price := basePrice[service]

	switch urgency {
	case UrgencyEmergency:
		price *= 1.5
	case UrgencyUrgent:
		price *= 1.25
	}

	if isCommercial(propertyType) {
		price *= 1.4
	}

	return math.Round(price*100) / 100
}

// isCommercial matches the property type literally: "Commercial" is not a
// commercial property.
func isCommercial(propertyType string) bool {
	return strings.HasPrefix(propertyType, "commercial") || propertyType == "industrial"
}

// Priority ranks a lead: urgency weight plus one point per $10 of estimate.
func Priority(urgency Urgency, estimatedPrice float64) int {
	return urgencyWeight[urgency] + int(math.Floor(estimatedPrice/10))
}
