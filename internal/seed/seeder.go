// Package seed fills a development database with dummy waitlist entries.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vrajamarii/internal/models"
)

const (
	DefaultNumEntries = 100

	batchSize = 500

	// Seeded rows are recognised by this address pattern.
	emailPattern = "testuser%d@seed.vrajamarii.test"
	emailLike    = "testuser%@seed.vrajamarii.test"
)

var (
	firstNames   = []string{"Ana", "Maria", "Elena", "Ioana", "Andrei", "Mihai", "Alexandru", "Cristina"}
	lastNames    = []string{"Popescu", "Ionescu", "Pop", "Radu", "Stan", "Dumitru", "Stoica", "Matei"}
	ageIntervals = []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+"}
	months       = []string{"may", "june", "july", "august", "september"}
	offers       = []string{"detox", "yoga", "thalasso", "massage", "nutrition"}
)

type Seeder struct {
	db  *gorm.DB
	log *zap.Logger
	r   *rand.Rand
}

// NewSeeder uses r for every random choice, so a fixed source gives
// reproducible rows.
func NewSeeder(db *gorm.DB, log *zap.Logger, r *rand.Rand) *Seeder {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Seeder{db: db, log: log, r: r}
}

// SeedWaitlist inserts n entries numbered after the highest existing id.
func (s *Seeder) SeedWaitlist(ctx context.Context, n int) error {
	db := s.db.WithContext(ctx)

	var maxID uint
	if err := db.Model(&models.WaitlistEntry{}).Select("COALESCE(MAX(id), 0)").Row().Scan(&maxID); err != nil {
		return fmt.Errorf("failed to get max waitlist id: %w", err)
	}
	base := int(maxID) + 1

	start := time.Now()
	for i := 0; i < n; i += batchSize {
		end := min(i+batchSize, n)

		entries := make([]models.WaitlistEntry, 0, end-i)
		for j := i; j < end; j++ {
			entries = append(entries, s.generateEntry(base+j))
		}
		if err := db.CreateInBatches(&entries, 100).Error; err != nil {
			return fmt.Errorf("failed to create waitlist batch %d-%d: %w", i, end-1, err)
		}
		s.log.Info("seeded waitlist batch", zap.Int("from", i), zap.Int("to", end-1))
	}

	s.log.Info("seeded waitlist", zap.Int("entries", n), zap.Duration("elapsed", time.Since(start)))
	return nil
}

// Cleanup removes every seeded entry and reports how many were deleted.
func (s *Seeder) Cleanup(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Where("email LIKE ?", emailLike).Delete(&models.WaitlistEntry{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete seeded entries: %w", result.Error)
	}
	s.log.Info("removed seeded waitlist entries", zap.Int64("deleted", result.RowsAffected))
	return result.RowsAffected, nil
}

// Count reports how many seeded entries exist.
func (s *Seeder) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.WaitlistEntry{}).Where("email LIKE ?", emailLike).Count(&count).Error
	return count, err
}

func (s *Seeder) generateEntry(index int) models.WaitlistEntry {
	picked := s.r.Perm(len(offers))[:1+s.r.Intn(2)]
	selected := make(pq.StringArray, 0, len(picked))
	for _, i := range picked {
		selected = append(selected, offers[i])
	}

	return models.WaitlistEntry{
		FirstName:        firstNames[s.r.Intn(len(firstNames))],
		LastName:         lastNames[s.r.Intn(len(lastNames))],
		Email:            fmt.Sprintf(emailPattern, index),
		AgeInterval:      ageIntervals[s.r.Intn(len(ageIntervals))],
		PreferredMonth:   months[s.r.Intn(len(months))],
		SelectedOffers:   selected,
		GDPRConsent:      true,
		BookingConfirmed: s.r.Intn(4) == 0,
	}
}
