package models

import "gorm.io/gorm"

type Advertisement struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	Position    string `gorm:"not null"`
	CompanyID   uint   `gorm:"not null;index"`

	// Relationships
	Company      Company       `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Applications []Application `gorm:"foreignKey:AdvertisementID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
