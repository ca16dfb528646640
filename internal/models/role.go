package models

import "gorm.io/gorm"

// Role is immutable reference data, seeded at startup
// (1 = "Hire", 2 = "Applicant").
type Role struct {
	gorm.Model

	Name string `gorm:"uniqueIndex;not null"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
