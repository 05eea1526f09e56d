package entities

import "time"

// Equipment with Mobile set is bookable per time slot independent of a
// room; non-mobile equipment is a fixed room fixture.
type Equipment struct {
	ID          uint64
	Name        string
	Description *string
	Quantity    int
	Mobile      bool
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
