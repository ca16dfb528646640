package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	RoleID       *uint  `gorm:"index"`
	CompanyID    *uint  `gorm:"index"` // set only for "Hire" users

	// Relationships
	Role         *Role         `gorm:"foreignKey:RoleID"`
	Company      *Company      `gorm:"foreignKey:CompanyID"`
	Applications []Application `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
