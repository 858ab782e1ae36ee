package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDepartmentCreated EventType = "department_created"
	EventDepartmentUpdated EventType = "department_updated"
	EventDepartmentDeleted EventType = "department_deleted"
	EventEmployeeCreated   EventType = "employee_created"
	EventEmployeeUpdated   EventType = "employee_updated"
	EventEmployeeDeleted   EventType = "employee_deleted"
	EventProjectCreated    EventType = "project_created"
	EventProjectUpdated    EventType = "project_updated"
	EventProjectDeleted    EventType = "project_deleted"
)

// AllEventTypes lists every event the services publish.
var AllEventTypes = []EventType{
	EventDepartmentCreated,
	EventDepartmentUpdated,
	EventDepartmentDeleted,
	EventEmployeeCreated,
	EventEmployeeUpdated,
	EventEmployeeDeleted,
	EventProjectCreated,
	EventProjectUpdated,
	EventProjectDeleted,
}

// Event represents a domain event emitted by services after a commit.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Entity    string      `json:"entity"`
	EntityID  int64       `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// EmployeeChangedPayload payload for employee events.
type EmployeeChangedPayload struct {
	Email                string          `json:"email"`
	DepartmentID         int64           `json:"department_id"`
	PreviousDepartmentID int64           `json:"previous_department_id,omitempty"`
	Salary               decimal.Decimal `json:"salary"`
}

// ProjectChangedPayload payload for project events.
type ProjectChangedPayload struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}
