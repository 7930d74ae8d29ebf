package migration

import (
	"github.com/google/uuid"
	"github.com/rentwheels/rental-admin/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for the content entry table.
func Run(db *gorm.DB) error {
	// 테이블 없으면 생성, 있으면 컬럼/인덱스만 보강
	return db.AutoMigrate(&domain.ContentEntry{})
}

// SeedDemo inserts a few demo FAQs for one brand when the table is empty.
// It reports how many rows were inserted.
func SeedDemo(db *gorm.DB, ownerID string) (int, error) {
	var count int64
	if err := db.Model(&domain.ContentEntry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	demo := []struct{ q, a string }{
		{"What documents do I need to pick up a car?", "A valid driving licence, a payment card in the driver's name and your booking reference."},
		{"Can I return the car to a different location?", "One-way rentals are possible between partner branches for an extra fee."},
		{"Is insurance included?", "Basic liability cover is included. Collision damage waivers can be added at checkout."},
	}

	entries := make([]domain.ContentEntry, len(demo))
	for i, d := range demo {
		entries[i] = domain.ContentEntry{
			ID:       uuid.New().String(),
			Kind:     domain.EntryKindBrand,
			OwnerID:  ownerID,
			Question: d.q,
			Answer:   d.a,
			OrderNum: i + 1,
		}
	}

	if err := db.Create(&entries).Error; err != nil {
		return 0, err
	}
	return len(entries), nil
}
