package sqlitestore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/testutil"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(value)
	require.NoError(t, err)
	return d
}

func seedDepartment(t *testing.T, store repository.Store, name string) *domain.Department {
	t.Helper()
	dept := &domain.Department{Name: name, Description: name + " team"}
	require.NoError(t, store.Departments().Create(context.Background(), dept))
	return dept
}

func newEmployee(t *testing.T, deptID int64, email, salary, hired string) *domain.Employee {
	t.Helper()
	return &domain.Employee{
		FirstName:    "Ana",
		LastName:     "Lopez",
		Email:        email,
		HireDate:     mustDate(t, hired),
		Salary:       decimal.RequireFromString(salary),
		DepartmentID: deptID,
	}
}

func TestEmployeeRoundTripKeepsDecimalAndDate(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	dept := seedDepartment(t, store, "Finance")

	emp := newEmployee(t, dept.ID, "ana@example.com", "1234.56", "2021-03-04")
	require.NoError(t, store.Employees().Create(ctx, emp))
	require.NotZero(t, emp.ID)

	got, err := store.Employees().GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, got.Salary.Equal(decimal.RequireFromString("1234.56")), got.Salary.String())
	assert.Equal(t, "2021-03-04", got.HireDate.Format(domain.DateLayout))
	require.NotNil(t, got.Department)
	assert.Equal(t, "Finance", got.Department.Name)
}

func TestUniqueEmailIndexMapsToDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	dept := seedDepartment(t, store, "Finance")

	require.NoError(t, store.Employees().Create(ctx, newEmployee(t, dept.ID, "dup@example.com", "10", "2020-01-01")))
	err := store.Employees().Create(ctx, newEmployee(t, dept.ID, "dup@example.com", "20", "2020-01-01"))
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestForeignKeysAreEnforced(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	err := store.Employees().Create(ctx, newEmployee(t, 999, "ghost@example.com", "10", "2020-01-01"))
	assert.ErrorIs(t, err, repository.ErrForeignKey)

	dept := seedDepartment(t, store, "Ops")
	require.NoError(t, store.Employees().Create(ctx, newEmployee(t, dept.ID, "ops@example.com", "10", "2020-01-01")))
	err = store.Departments().Delete(ctx, dept.ID)
	assert.ErrorIs(t, err, repository.ErrForeignKey)
}

func TestMissingRowsMapToNotFound(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	_, err := store.Departments().GetByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, store.Projects().Delete(ctx, 42), repository.ErrNotFound)
	assert.ErrorIs(t, store.Employees().Update(ctx, &domain.Employee{ID: 42}), repository.ErrNotFound)
}

func TestAverageSalaryIsExact(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	dept := seedDepartment(t, store, "R&D")

	_, found, err := store.Employees().AverageSalaryByDepartment(ctx, dept.ID)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Employees().Create(ctx, newEmployee(t, dept.ID, "a@example.com", "50000.00", "2020-01-01")))
	require.NoError(t, store.Employees().Create(ctx, newEmployee(t, dept.ID, "b@example.com", "40000.00", "2020-01-01")))

	avg, found, err := store.Employees().AverageSalaryByDepartment(ctx, dept.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, avg.Equal(decimal.RequireFromString("45000.00")), avg.String())
}

func TestSalaryRangeBoundsAreInclusive(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	dept := seedDepartment(t, store, "Sales")

	for i, salary := range []string{"999.99", "1000", "1500", "2000", "2000.01"} {
		email := string(rune('a'+i)) + "@example.com"
		require.NoError(t, store.Employees().Create(ctx, newEmployee(t, dept.ID, email, salary, "2020-01-01")))
	}

	got, err := store.Employees().ListBySalaryRange(ctx, decimal.NewFromInt(1000), decimal.NewFromInt(2000))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "b@example.com", got[0].Email)
	assert.Equal(t, "d@example.com", got[2].Email)
}

func TestSalaryRangeHugeBoundsDoNotWrap(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	dept := seedDepartment(t, store, "Finance")
	require.NoError(t, store.Employees().Create(ctx, newEmployee(t, dept.ID, "a@example.com", "1500", "2020-01-01")))

	for _, bounds := range [][2]string{
		{"0", "100000000000000000"},
		{"-100000000000000000", "100000000000000000"},
		{"0", "1e40"},
	} {
		got, err := store.Employees().ListBySalaryRange(ctx,
			decimal.RequireFromString(bounds[0]), decimal.RequireFromString(bounds[1]))
		require.NoError(t, err)
		require.Len(t, got, 1, bounds)
		assert.Equal(t, "a@example.com", got[0].Email)
	}

	got, err := store.Employees().ListBySalaryRange(ctx,
		decimal.RequireFromString("100000000000000000"), decimal.RequireFromString("1e40"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSalaryBeyondCentsIsRejected(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	dept := seedDepartment(t, store, "Finance")

	err := store.Employees().Create(ctx, newEmployee(t, dept.ID, "big@example.com", "100000000000000000", "2020-01-01"))
	require.Error(t, err)
	_, err = store.Employees().GetByEmail(ctx, "big@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	emp := newEmployee(t, dept.ID, "ok@example.com", "10", "2020-01-01")
	require.NoError(t, store.Employees().Create(ctx, emp))
	emp.Salary = decimal.RequireFromString("-100000000000000000")
	require.Error(t, store.Employees().Update(ctx, emp))

	stored, err := store.Employees().GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, stored.Salary.Equal(decimal.NewFromInt(10)), stored.Salary.String())
}

func TestAverageSalaryScale(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	dept := seedDepartment(t, store, "Support")
	for i, salary := range []string{"100", "0", "0"} {
		email := string(rune('a'+i)) + "@example.com"
		require.NoError(t, store.Employees().Create(ctx, newEmployee(t, dept.ID, email, salary, "2020-01-01")))
	}

	avg, found, err := store.Employees().AverageSalaryByDepartment(ctx, dept.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "33.3333333333333333", avg.String())
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(tx repository.Store) error {
		require.NoError(t, tx.Departments().Create(ctx, &domain.Department{Name: "Temp"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	depts, err := store.Departments().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, depts)
}

func TestProjectsByStatusIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	for _, p := range []domain.Project{{Name: "A", Status: "ACTIVO"}, {Name: "B", Status: "activo"}, {Name: "C", Status: "CERRADO"}} {
		project := p
		require.NoError(t, store.Projects().Create(ctx, &project))
	}

	got, err := store.Projects().ListByStatus(ctx, "ACTIVO")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)
}
