package venue

import "time"

type Venue struct {
	ID        string
	Domain    string
	Name      string
	Plan      string
	Status    string
	CreatedAt time.Time
}
