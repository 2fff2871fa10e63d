package domain

// SessionRecord is the identity carried in the session cookie.
type SessionRecord struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// IdentityClaim is an unverified assertion of who the caller is during
// signup and recovery. Username is nil for flows bound to an email only.
type IdentityClaim struct {
	Email    string  `json:"email"`
	Username *string `json:"username"`
}

// Matches reports whether both claims name the same email and username.
func (c IdentityClaim) Matches(other IdentityClaim) bool {
	return c.Email == other.Email && SameUsername(c.Username, other.Username)
}

// SameUsername compares two optional usernames; nil only matches nil.
func SameUsername(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
