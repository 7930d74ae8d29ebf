package domain

import (
	"strings"
	"time"
)

// EntryKind selects which owner collection a content entry belongs to
type EntryKind string

const (
	EntryKindBrand         EntryKind = "BRAND"
	EntryKindVehicleBucket EntryKind = "VEHICLE_BUCKET"
	EntryKindBlog          EntryKind = "BLOG"
	EntryKindVehicle       EntryKind = "VEHICLE"
)

// EntryKinds lists every supported kind in display order
var EntryKinds = []EntryKind{
	EntryKindBrand,
	EntryKindVehicleBucket,
	EntryKindBlog,
	EntryKindVehicle,
}

// IsValid reports whether k is one of the supported kinds
func (k EntryKind) IsValid() bool {
	for _, known := range EntryKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ContentEntry is a question/answer pair attached to an owner aggregate
// (brand, vehicle bucket, blog, vehicle)
// Table: content_entries
type ContentEntry struct {
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
	ID        string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Kind      EntryKind `gorm:"column:kind;size:32;index:idx_entries_owner,priority:1" json:"kind"`
	OwnerID   string    `gorm:"column:owner_id;size:64;index:idx_entries_owner,priority:2" json:"owner_id"`
	Question  string    `gorm:"column:question;type:text" json:"question"`
	Answer    string    `gorm:"column:answer;type:text" json:"answer"`
	OrderNum  int       `gorm:"column:order_num" json:"order_num"`
}

// TableName specifies the table name for ContentEntry model
func (ContentEntry) TableName() string {
	return "content_entries"
}

// EntryResponse is the API response format for a content entry
type EntryResponse struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Kind      EntryKind `json:"kind"`
	OwnerID   string    `json:"owner_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	OrderNum  int       `json:"order_num"`
}

// ToResponse converts ContentEntry to EntryResponse
func (e *ContentEntry) ToResponse() EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Kind:      e.Kind,
		OwnerID:   e.OwnerID,
		Question:  e.Question,
		Answer:    e.Answer,
		OrderNum:  e.OrderNum,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// CreateEntryRequest is the request body for creating an entry
type CreateEntryRequest struct {
	Kind     EntryKind `json:"kind" binding:"required" validate:"required,oneof=BRAND VEHICLE_BUCKET BLOG VEHICLE"`
	OwnerID  string    `json:"owner_id" binding:"required" validate:"required,max=64"`
	Question string    `json:"question" validate:"required"`
	Answer   string    `json:"answer" validate:"required"`
}

// UpdateEntryRequest is the request body for updating an entry.
// Kind and owner are immutable and never resent.
type UpdateEntryRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// ReorderEntriesRequest persists the display order of one owner's entries
type ReorderEntriesRequest struct {
	Kind    EntryKind `json:"kind" binding:"required" validate:"required,oneof=BRAND VEHICLE_BUCKET BLOG VEHICLE"`
	OwnerID string    `json:"owner_id" binding:"required" validate:"required,max=64"`
	IDs     []string  `json:"ids" binding:"required,min=1" validate:"required,min=1,dive,required"`
}

// EntryListQuery filters the entry list endpoint
type EntryListQuery struct {
	Kind    EntryKind `form:"kind" validate:"required,oneof=BRAND VEHICLE_BUCKET BLOG VEHICLE"`
	OwnerID string    `form:"owner_id" validate:"required,max=64"`
}

// Normalize trims the free-text fields in place
func (r *CreateEntryRequest) Normalize() {
	r.OwnerID = strings.TrimSpace(r.OwnerID)
	r.Question = strings.TrimSpace(r.Question)
	r.Answer = strings.TrimSpace(r.Answer)
}

// Normalize trims the free-text fields in place
func (r *UpdateEntryRequest) Normalize() {
	r.Question = strings.TrimSpace(r.Question)
	r.Answer = strings.TrimSpace(r.Answer)
}
