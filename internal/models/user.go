package models

import "time"

// User is a back-office account. Only the seeded admin exists by default.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null" json:"role"` // admin, accountant, coach, staff
	CreatedAt    time.Time `json:"created_at"`
}

const RoleAdmin = "admin"

// ValidRoles lists the roles a user may hold.
var ValidRoles = map[string]bool{
	"admin": true, "accountant": true, "coach": true, "staff": true,
}
