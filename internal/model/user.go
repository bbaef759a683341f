package model

import "time"

// User represents a diner record as stored in the `users` table.  The
// diet restriction tags are immutable input to reservation matching; they
// are set at signup and only account-management code may change them.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique email address used for login.
//  PasswordHash – bcrypt hashed password.
//  Diets        – dietary restriction tags (deduplicated, unordered).
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.user_id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Diets        []string  // users.diet_restrictions (SET column)
	CreatedAt    time.Time // users.created_at
}
