package seed

import (
	"context"
	"math/rand"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeeder(t *testing.T) (*Seeder, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewSeeder(db, zap.NewNop(), rand.New(rand.NewSource(1))), mock
}

func TestGenerateEntry(t *testing.T) {
	s, _ := setupSeeder(t)

	entry := s.generateEntry(42)

	assert.Equal(t, "testuser42@seed.vrajamarii.test", entry.Email)
	assert.True(t, entry.GDPRConsent)
	assert.Contains(t, firstNames, entry.FirstName)
	assert.Contains(t, ageIntervals, entry.AgeInterval)
	assert.NotEmpty(t, entry.SelectedOffers)
	assert.LessOrEqual(t, len(entry.SelectedOffers), 2)
	for _, o := range entry.SelectedOffers {
		assert.Contains(t, offers, o)
	}
}

func TestGenerateEntryIsReproducible(t *testing.T) {
	a, _ := setupSeeder(t)
	b, _ := setupSeeder(t)

	assert.Equal(t, a.generateEntry(1), b.generateEntry(1))
}

func TestSeedWaitlist(t *testing.T) {
	s, mock := setupSeeder(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(MAX(id), 0) FROM "waitlist"`)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "waitlist"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11).AddRow(12).AddRow(13))

	require.NoError(t, s.SeedWaitlist(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCleanup(t *testing.T) {
	s, mock := setupSeeder(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "waitlist" WHERE email LIKE $1`)).
		WithArgs(emailLike).
		WillReturnResult(sqlmock.NewResult(0, 5))

	deleted, err := s.Cleanup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	s, mock := setupSeeder(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "waitlist" WHERE email LIKE $1`)).
		WithArgs(emailLike).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
