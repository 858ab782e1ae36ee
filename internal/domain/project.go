package domain

import "time"

// Project is a unit of work tracked by an opaque status token such as "ACTIVO".
type Project struct {
	ID        int64
	Name      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
