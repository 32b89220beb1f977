package models

import "time"

// Role gates chat and administrative surfaces.
type Role string

const (
	RoleUser   Role = "user"
	RoleTester Role = "tester"
	RoleAdmin  Role = "admin"
)

// User is an account. At least one of Email and Username is present; each is
// unique within its category.
type User struct {
	UserID       string  `json:"user_id" gorm:"primaryKey"`
	Email        *string `json:"email,omitempty" gorm:"uniqueIndex"`
	Username     *string `json:"username,omitempty" gorm:"uniqueIndex"`
	DisplayName  string  `json:"display_name" gorm:"not null"`
	PasswordHash string  `json:"-" gorm:"not null"`
	Role         Role    `json:"role" gorm:"not null;default:'user'"`

	GamesPlayed   int     `json:"games_played" gorm:"default:0"`
	BestReturn    float64 `json:"best_return" gorm:"default:0"`
	AverageReturn float64 `json:"average_return" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// RecordGame folds one finished session's return into the aggregate stats.
func (u *User) RecordGame(returnPct float64) {
	if u.GamesPlayed == 0 || returnPct > u.BestReturn {
		u.BestReturn = returnPct
	}
	u.AverageReturn = (u.AverageReturn*float64(u.GamesPlayed) + returnPct) / float64(u.GamesPlayed+1)
	u.GamesPlayed++
}
