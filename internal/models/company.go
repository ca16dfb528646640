package models

import "gorm.io/gorm"

type Company struct {
	gorm.Model

	Name string `gorm:"not null"`

	// Relationships
	Advertisements []Advertisement `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Users          []User          `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
