package models

import "time"

// User maps to table `users`. Password holds the bcrypt hash and is never
// serialized; handlers convert to views.UserView before responding.
type User struct {
	ID        int64
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	IsStaff   bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
