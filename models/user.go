package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Email        string `gorm:"type:varchar(320);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}
