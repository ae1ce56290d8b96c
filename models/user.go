package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer     UserRole = "customer"
	RoleAdmin        UserRole = "admin"
	RoleManufacturer UserRole = "manufacturer"
	RoleDelivery     UserRole = "delivery"
)

// AccountStatus tracks the approval state of an account. Manufacturer and
// delivery sign-ups start pending and become active only through an admin
// approval; everyone else is active from creation.
type AccountStatus string

const (
	AccountPending AccountStatus = "pending"
	AccountActive  AccountStatus = "active"
)

type User struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	UID          string        `json:"uid" gorm:"uniqueIndex;not null"`
	Name         string        `json:"name" gorm:"not null"`
	Email        string        `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string        `json:"-" gorm:"not null"`
	Phone        string        `json:"phone"`
	Role         UserRole      `json:"role" gorm:"not null;default:'customer'"`
	Status       AccountStatus `json:"status" gorm:"not null;default:'active'"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// ApprovalStatus is the lifecycle of an approval request
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ApprovalRequest is created alongside a manufacturer/delivery sign-up and
// consumed by the admin approval workflow.
type ApprovalRequest struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	UserUID       string         `json:"user_uid" gorm:"index;not null"`
	UserEmail     string         `json:"user_email" gorm:"not null"`
	UserName      string         `json:"user_name"`
	RequestedRole UserRole       `json:"requested_role" gorm:"not null"`
	Status        ApprovalStatus `json:"status" gorm:"not null;default:'pending'"`
	DecidedBy     string         `json:"decided_by"`
	DecidedAt     *time.Time     `json:"decided_at"`
	RequestedAt   time.Time      `json:"requested_at" gorm:"autoCreateTime"`
}
