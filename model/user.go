package model

// User holds the local user data relevant to the application (outside of firebase auth)
type User struct {
	Id          string `db:"firebase_id" json:"id"`
	Username    string `db:"username" json:"username"`
	DisplayName string `db:"display_name" json:"displayName"`
	Avatar      string `db:"avatar" json:"avatar"`
}

// IsAuthenticated reports whether u identifies a signed in viewer. A nil
// *User is the anonymous viewer.
func (u *User) IsAuthenticated() bool {
	return u != nil
}

// Is compares identities, not usernames.
func (u *User) Is(other *User) bool {
	return u != nil && other != nil && u.Id == other.Id
}

// Name is what templates show for the author line.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
