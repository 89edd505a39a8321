package balance_test

import (
	"context"
	"testing"
	"time"

	"go-leave/internal/balance"
	"go-leave/internal/category"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupResetterTest(t *testing.T) (*balance.Resetter, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	assert.NoError(t, err)

	return balance.NewResetter(gormDB), sqlMock, func() { db.Close() }
}

func TestResetter_ProvisionMissing(t *testing.T) {
	resetter, sqlMock, cleanup := setupResetterTest(t)
	defer cleanup()

	sqlMock.ExpectExec("INSERT INTO user_leave_balances").
		WillReturnResult(sqlmock.NewResult(0, 4))

	affected, err := resetter.ProvisionMissing(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(4), affected)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestResetter_ApplyReset(t *testing.T) {
	resetter, sqlMock, cleanup := setupResetterTest(t)
	defer cleanup()

	sqlMock.ExpectExec("INSERT INTO user_leave_balances").
		WithArgs(category.ResetPolicyMonthly).
		WillReturnResult(sqlmock.NewResult(0, 2))

	affected, err := resetter.ApplyReset(context.Background(), category.ResetPolicyMonthly)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestResetter_RunScheduled(t *testing.T) {
	ctx := context.Background()

	t.Run("mid month does nothing", func(t *testing.T) {
		resetter, sqlMock, cleanup := setupResetterTest(t)
		defer cleanup()

		err := resetter.RunScheduled(ctx, time.Date(2025, time.March, 15, 3, 0, 0, 0, time.UTC))
		assert.NoError(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("first of month applies monthly reset only", func(t *testing.T) {
		resetter, sqlMock, cleanup := setupResetterTest(t)
		defer cleanup()

		sqlMock.ExpectExec("INSERT INTO user_leave_balances").
			WithArgs(category.ResetPolicyMonthly).
			WillReturnResult(sqlmock.NewResult(0, 3))

		err := resetter.RunScheduled(ctx, time.Date(2025, time.March, 1, 3, 0, 0, 0, time.UTC))
		assert.NoError(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("first of january applies monthly then yearly", func(t *testing.T) {
		resetter, sqlMock, cleanup := setupResetterTest(t)
		defer cleanup()

		sqlMock.ExpectExec("INSERT INTO user_leave_balances").
			WithArgs(category.ResetPolicyMonthly).
			WillReturnResult(sqlmock.NewResult(0, 3))
		sqlMock.ExpectExec("INSERT INTO user_leave_balances").
			WithArgs(category.ResetPolicyYearly).
			WillReturnResult(sqlmock.NewResult(0, 9))

		err := resetter.RunScheduled(ctx, time.Date(2026, time.January, 1, 3, 0, 0, 0, time.UTC))
		assert.NoError(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
