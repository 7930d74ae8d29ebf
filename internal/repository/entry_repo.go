package repository

import (
	"errors"

	"github.com/rentwheels/rental-admin/internal/common"
	"github.com/rentwheels/rental-admin/internal/domain"
	"gorm.io/gorm"
)

// EntryRepository defines the interface for content entry data access
type EntryRepository interface {
	ListByOwner(kind domain.EntryKind, ownerID string) ([]*domain.ContentEntry, error)
	FindByID(id string) (*domain.ContentEntry, error)
	Create(entry *domain.ContentEntry) error
	Update(entry *domain.ContentEntry) error
	Delete(id string) error
	ReorderBulk(kind domain.EntryKind, ownerID string, ids []string) error
	GetMaxOrderNum(kind domain.EntryKind, ownerID string) (int, error)
}

// entryRepository implements EntryRepository with GORM
type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

// ListByOwner retrieves one owner's entries in display order
func (r *entryRepository) ListByOwner(kind domain.EntryKind, ownerID string) ([]*domain.ContentEntry, error) {
	var entries []*domain.ContentEntry

	err := r.db.
		Where("kind = ? AND owner_id = ?", kind, ownerID).
		Order("order_num ASC, created_at ASC").
		Find(&entries).Error

	if err != nil {
		return nil, err
	}

	return entries, nil
}

// FindByID finds an entry by ID
func (r *entryRepository) FindByID(id string) (*domain.ContentEntry, error) {
	var entry domain.ContentEntry

	err := r.db.
		Where("id = ?", id).
		First(&entry).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrEntryNotFound
		}
		return nil, err
	}

	return &entry, nil
}

// Create creates a new entry
func (r *entryRepository) Create(entry *domain.ContentEntry) error {
	return r.db.Create(entry).Error
}

// Update saves question and answer of an entry
func (r *entryRepository) Update(entry *domain.ContentEntry) error {
	return r.db.Model(entry).
		Select("question", "answer", "updated_at").
		Updates(entry).Error
}

// Delete deletes an entry by ID
func (r *entryRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&domain.ContentEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrEntryNotFound
	}
	return nil
}

// ReorderBulk rewrites order_num of an owner's entries (transaction).
// Every id must belong to the owner.
func (r *entryRepository) ReorderBulk(kind domain.EntryKind, ownerID string, ids []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.ContentEntry{}).
			Where("kind = ? AND owner_id = ? AND id IN ?", kind, ownerID, ids).
			Count(&count).Error; err != nil {
			return err
		}
		if int(count) != len(ids) {
			return common.ErrForeignEntry
		}

		for i, id := range ids {
			if err := tx.Model(&domain.ContentEntry{}).
				Where("id = ?", id).
				UpdateColumn("order_num", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetMaxOrderNum returns the largest order_num among an owner's entries
func (r *entryRepository) GetMaxOrderNum(kind domain.EntryKind, ownerID string) (int, error) {
	var maxOrder int

	err := r.db.Model(&domain.ContentEntry{}).
		Select("COALESCE(MAX(order_num), 0)").
		Where("kind = ? AND owner_id = ?", kind, ownerID).
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}

	return maxOrder, nil
}
