package domain

// User is the account record owned by the database gateway. This service
// only reads it and asks the gateway to change it.
type User struct {
	ID         int64   `json:"id"`
	Username   string  `json:"username"`
	FullName   string  `json:"full_name"`
	SchoolName string  `json:"school_name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Rating     float64 `json:"rating"`
}

// UserFilter selects a single user. Exactly one field is expected to be set.
type UserFilter struct {
	ID       *int64  `json:"id,omitempty"`
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

func ByID(id int64) UserFilter { return UserFilter{ID: &id} }

func ByUsername(username string) UserFilter { return UserFilter{Username: &username} }

func ByEmail(email string) UserFilter { return UserFilter{Email: &email} }

// NewUser carries the fields needed to create an account.
type NewUser struct {
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	SchoolName string `json:"school_name"`
	Password   string `json:"password"` // already hashed
}

// UserUpdate lists the fields to change on an existing account. Nil fields
// are left untouched.
type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"` // already hashed
}
