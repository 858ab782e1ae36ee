package domain

import "time"

// Department represents an organizational unit that employees belong to.
type Department struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
