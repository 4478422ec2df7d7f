package domain

// Attending physician record.
// Records are append-only: once registered an attending is never
// updated or deleted.
type Attending struct {
	AttendingUsername string `json:"attending_username"` // unique, "Lastname.F" style
	AttendingEmail    string `json:"attending_email"`
	AttendingPhone    string `json:"attending_phone"`
}
