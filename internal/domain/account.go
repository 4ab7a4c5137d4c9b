package domain

import "time" // Timestamps

// Account Model
type Account struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                         // Primary key
	Username  string    `gorm:"unique;not null" json:"username"`              // Unique, case-sensitive username
	PIN       string    `gorm:"column:pin;type:varchar(4);not null" json:"-"` // 4-digit PIN, never rendered
	IsAdmin   bool      `gorm:"not null;default:false" json:"is_admin"`       // Administrator flag
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`             // Insert time
}

// TableName keeps the users table name stable
func (Account) TableName() string {
	return "users"
}

// ValidPIN reports whether pin is exactly four ASCII digits
func ValidPIN(pin string) bool {
	if len(pin) != 4 {
		return false // Wrong length
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false // Non-digit character
		}
	}
	return true
}
