package models

import (
	"time"
)

type UserRole string

const (
	RoleConsumer UserRole = "consumer"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Email       string    `json:"email" gorm:"unique"`
	Password    string    `json:"password,omitempty"`
	Governorate string    `json:"governorate"`
	Phone       string    `json:"phone"`
	Role        UserRole  `json:"role" gorm:"type:varchar(16);default:'consumer'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
