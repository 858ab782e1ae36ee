package domain

// Entity kinds used in error reporting and events.
const (
	KindDepartment = "department"
	KindEmployee   = "employee"
	KindProject    = "project"
)
