package models

import (
	"fmt"
	"time"
)

// Report lifecycle statuses. The zero value of a freshly filed report is
// StatusPending; every other status is reachable only through the
// transition table below.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusForwarded  = "Forwarded"
	StatusResolved   = "Resolved"
)

// statusTransitions maps a current status to the set of statuses an admin
// may move the report into. Writing the same status again is always a no-op.
var statusTransitions = map[string][]string{
	StatusPending:    {StatusInProgress, StatusForwarded, StatusResolved},
	StatusInProgress: {StatusPending, StatusForwarded, StatusResolved},
	StatusForwarded:  {StatusInProgress, StatusResolved},
	StatusResolved:   {StatusInProgress},
}

// ValidStatus reports whether s is one of the known lifecycle statuses.
func ValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether a report may move from one status to another.
func CanTransition(from, to string) bool {
	if from == to {
		return ValidStatus(from)
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Report is a filed grievance. It is owned by exactly one user and may carry
// any number of media attachments.
type Report struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Location    string    `gorm:"size:200" json:"location"`
	Address     string    `gorm:"size:200" json:"address"`
	Pincode     string    `gorm:"size:20" json:"pincode"`
	Department  string    `gorm:"size:100;not null" json:"department"`
	Status      string    `gorm:"size:20;default:Pending" json:"status"`
	DateCreated time.Time `json:"date_created"`
	ImageURL    string    `gorm:"size:200" json:"image_url"`
	AssignedTo  string    `gorm:"size:200" json:"assigned_to"`

	UserID uint  `gorm:"not null" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"-"`

	// Verification metadata, set only by the admin verify-and-forward flow.
	IsVerified        bool       `json:"is_verified"`
	VerifiedAt        *time.Time `json:"verified_at"`
	VerifiedBy        uint       `json:"verified_by"`
	ForwardedTo       string     `gorm:"size:200" json:"forwarded_to"`
	VerificationNotes string     `gorm:"type:text" json:"verification_notes"`

	Media []Media `gorm:"foreignKey:ComplainID" json:"-"`
}

// Code returns the display code for a report id, e.g. 7 -> "CMP-000007".
// Ids wider than six digits are never truncated.
func Code(id uint) string {
	return fmt.Sprintf("CMP-%06d", id)
}

// Code returns the report's display code.
func (r *Report) Code() string {
	return Code(r.ID)
}
