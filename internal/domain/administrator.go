package domain

// Administrator credential record for the report endpoints.
// Passwords are stored as given; the registration flow enforces the
// length and character rules before a record is created.
type Administrator struct {
	AdminUsername string `json:"admin_username"` // unique, may contain inner spaces
	AdminPassword string `json:"admin_password"`
}
