package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Application records one applicant submitting a CV against one
// advertisement. The composite unique index is the store-level guarantee
// that a (user, advertisement) pair applies at most once, even when two
// submissions race past the handler's existence check. Soft-deleted rows
// would still occupy that index, so application rows are always deleted
// unscoped.
type Application struct {
	gorm.Model

	UserID          uint           `gorm:"not null;uniqueIndex:idx_user_advertisement"`
	AdvertisementID uint           `gorm:"not null;uniqueIndex:idx_user_advertisement"`
	CVPath          string         `gorm:"not null"`
	AppliedAt       time.Time      `gorm:"not null;index"`
	Upload          datatypes.JSON `gorm:"type:jsonb"` // original filename, size, content type

	// Relationships
	User          User          `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Advertisement Advertisement `gorm:"foreignKey:AdvertisementID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
