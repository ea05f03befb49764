package models

// Roles a user can hold. Admin is the only elevated role.
const (
	RoleGeneral = "general"
	RoleAdmin   = "admin"
)

// User represents a registered citizen or administrator.
// The password field always holds a bcrypt hash, never plaintext.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:80;not null" json:"name"`
	Email    string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:200;not null" json:"-"`
	Address  string `gorm:"size:200;not null" json:"-"`
	Pincode  string `gorm:"size:20;not null" json:"-"`
	Type     string `gorm:"size:20;default:general" json:"type"`

	Reports []Report `gorm:"foreignKey:UserID" json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Type == RoleAdmin
}

// PublicUser is the projection returned to clients after login.
type PublicUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"`
}

// Public strips credential and address fields from a user record.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Type: u.Type}
}
