package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email                     string `gorm:"uniqueIndex;not null"`
	Password                  string `json:"-"`
	FirstName                 string
	LastName                  string
	EmailNotificationsEnabled bool
	ReminderTime              string // HH:MM, stored in UTC
	TimeZone                  string
}

// Location returns the user's time zone, falling back to fallback when the
// stored zone is missing or unknown.
func (u *User) Location(fallback *time.Location) *time.Location {
	if u.TimeZone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(u.TimeZone)
	if err != nil {
		return fallback
	}
	return loc
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
