//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/persistence"
	"github.com/spec-kit/employee-service/internal/repository"
)

const (
	postgresImage         = "postgres:16-alpine"
	containerStartTimeout = 90 * time.Second
)

func newPostgresStore(t *testing.T) repository.Store {
	t.Helper()
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "employees",
				"POSTGRES_PASSWORD": "employees",
				"POSTGRES_DB":       "employees",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(containerStartTimeout),
		},
		Started: true,
	})
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	pg, err := persistence.NewPostgres(ctx, config.PostgresConfig{
		DSN:      fmt.Sprintf("postgres://employees:employees@%s:%s/employees?sslmode=disable", host, port.Port()),
		MaxConns: 4,
		MinConns: 1,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(pg.Close)

	require.NoError(t, persistence.RunMigrations(ctx, config.DriverPostgres, pg, logger))
	return repository.NewPostgresStore(pg.PoolHandle())
}

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()
	store := newPostgresStore(t)

	dept := &domain.Department{Name: "Engineering", Description: "builds things"}
	require.NoError(t, store.Departments().Create(ctx, dept))

	hire := func(email, salary, hired string) *domain.Employee {
		d, err := domain.ParseDate(hired)
		require.NoError(t, err)
		emp := &domain.Employee{
			FirstName:    "Ana",
			LastName:     "Lopez",
			Email:        email,
			HireDate:     d,
			Salary:       decimal.RequireFromString(salary),
			DepartmentID: dept.ID,
		}
		require.NoError(t, store.Employees().Create(ctx, emp))
		return emp
	}
	first := hire("a@example.com", "50000.00", "2020-12-05")
	hire("b@example.com", "40000.00", "2022-01-01")

	t.Run("duplicate email maps to sentinel", func(t *testing.T) {
		dup := *first
		dup.ID = 0
		err := store.Employees().Create(ctx, &dup)
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	})

	t.Run("unknown department maps to foreign key", func(t *testing.T) {
		orphan := *first
		orphan.ID = 0
		orphan.Email = "orphan@example.com"
		orphan.DepartmentID = 999999
		assert.ErrorIs(t, store.Employees().Create(ctx, &orphan), repository.ErrForeignKey)
	})

	t.Run("referenced department cannot be deleted", func(t *testing.T) {
		assert.ErrorIs(t, store.Departments().Delete(ctx, dept.ID), repository.ErrForeignKey)
	})

	t.Run("average is exact", func(t *testing.T) {
		avg, found, err := store.Employees().AverageSalaryByDepartment(ctx, dept.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.True(t, decimal.RequireFromString("45000.00").Equal(avg), avg.String())

		_, found, err = store.Employees().AverageSalaryByDepartment(ctx, dept.ID+1000)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("ranges are inclusive", func(t *testing.T) {
		got, err := store.Employees().ListBySalaryRange(ctx, decimal.NewFromInt(40000), decimal.NewFromInt(45000))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "b@example.com", got[0].Email)

		start, _ := domain.ParseDate("2020-12-02")
		end, _ := domain.ParseDate("2021-12-02")
		got, err = store.Employees().ListByHireDateRange(ctx, start, end)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "a@example.com", got[0].Email)
	})

	t.Run("transaction rolls back on error", func(t *testing.T) {
		err := store.WithinTx(ctx, func(tx repository.Store) error {
			require.NoError(t, tx.Projects().Create(ctx, &domain.Project{Name: "ghost", Status: "ACTIVO"}))
			return repository.ErrNotFound
		})
		require.ErrorIs(t, err, repository.ErrNotFound)

		projects, err := store.Projects().ListByStatus(ctx, "ACTIVO")
		require.NoError(t, err)
		assert.Empty(t, projects)
	})

	t.Run("average keeps sixteen fractional digits", func(t *testing.T) {
		support := &domain.Department{Name: "Support", Description: "answers"}
		require.NoError(t, store.Departments().Create(ctx, support))
		for i, salary := range []string{"100", "0", "0"} {
			d, _ := domain.ParseDate("2020-01-01")
			require.NoError(t, store.Employees().Create(ctx, &domain.Employee{
				FirstName:    "Sam",
				LastName:     "Ruiz",
				Email:        string(rune('p'+i)) + "@example.com",
				HireDate:     d,
				Salary:       decimal.RequireFromString(salary),
				DepartmentID: support.ID,
			}))
		}
		avg, found, err := store.Employees().AverageSalaryByDepartment(ctx, support.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "33.3333333333333333", avg.String())
	})

	t.Run("missing rows report not found", func(t *testing.T) {
		_, err := store.Projects().GetByID(ctx, 424242)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.ErrorIs(t, store.Employees().Delete(ctx, 424242), repository.ErrNotFound)
	})
}
