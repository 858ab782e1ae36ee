package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for hire dates.
const DateLayout = "2006-01-02"

// Employee is a person on the payroll of exactly one department.
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	// HireDate is a calendar date at UTC midnight.
	HireDate     time.Time
	Salary       decimal.Decimal
	DepartmentID int64
	// Department is populated on reads.
	Department *Department
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// Date truncates t to its calendar date in UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AverageScale is the number of fractional digits kept by salary averages on
// every store.
const AverageScale = 16

// MaxSalary is the exclusive upper bound of a salary, matching NUMERIC(12,2).
var MaxSalary = decimal.New(1, 10)

// SalaryInRange reports whether s fits the stored salary column: 0 <= s < MaxSalary.
func SalaryInRange(s decimal.Decimal) bool {
	return !s.IsNegative() && s.LessThan(MaxSalary)
}

// MeanSalary divides a salary total by the number of salaries, rounded half
// away from zero to AverageScale digits.
func MeanSalary(sum decimal.Decimal, count int64) decimal.Decimal {
	return sum.DivRound(decimal.NewFromInt(count), AverageScale)
}
