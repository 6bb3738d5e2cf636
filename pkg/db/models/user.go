package models

import (
	"time"

	"github.com/campuslabs/labtrack-backend/pkg/enums"
)

// User is an account that can sign in: an administrator or a lab custodian.
type User struct {
	UserID       int64       `gorm:"column:user_id;primaryKey;autoIncrement"`
	FullName     string      `gorm:"column:full_name;not null"`
	Email        string      `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string      `gorm:"column:password_hash;not null"`
	Role         enums.Role  `gorm:"column:role;not null;default:'Custodian'"`
	LabID        *int64      `gorm:"column:lab_id"`
	AssignedLab  *Laboratory `gorm:"foreignKey:LabID;references:LabID"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string { return "users" }
