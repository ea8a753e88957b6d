package properties

import (
	"encoding/json"
	"os"

	"driftwood/pkg/logger"
)

// Reservations cap party size at the property capacity; when the content
// file is missing or broken this is the fallback.
const defaultMaxGuests = 4

// Service provides read access to the property content.
type Service interface {
	GetProperty() *Property
	MaxOccupancy() int
}

type service struct {
	property *Property
}

// NewService wraps already-loaded property content.
func NewService(property *Property) Service {
	if property.MaxGuests <= 0 {
		property.MaxGuests = defaultMaxGuests
	}
	return &service{property: property}
}

// LoadFromFile reads the property content JSON once at startup. A missing or
// malformed file is logged and replaced with minimal defaults; content never
// blocks the booking engine from starting.
func LoadFromFile(path string, log *logger.Logger) Service {
	data, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Warn("Property content file not readable, serving defaults", "path", path)
		return NewService(&Property{Name: "Driftwood", MaxGuests: defaultMaxGuests})
	}

	var property Property
	if err := json.Unmarshal(data, &property); err != nil {
		log.WithError(err).Warn("Property content file malformed, serving defaults", "path", path)
		return NewService(&Property{Name: "Driftwood", MaxGuests: defaultMaxGuests})
	}

	return NewService(&property)
}

func (s *service) GetProperty() *Property {
	return s.property
}

func (s *service) MaxOccupancy() int {
	return s.property.MaxGuests
}
