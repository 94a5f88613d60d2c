package models

import "time"

// Speaker roles. Anything else is rejected at the API boundary.
const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// NormalizeRole applies the doctor default for an absent role and
// reports whether the result is a valid role.
func NormalizeRole(role string) (string, bool) {
	switch role {
	case "":
		return RoleDoctor, true
	case RoleDoctor, RolePatient:
		return role, true
	default:
		return "", false
	}
}

// Message is one text utterance in a doctor-patient conversation.
// Rows are append-only: no update or delete path exists.
type Message struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Role      string    `gorm:"column:role;type:text;index" json:"role"` // "doctor" | "patient"
	Text      string    `gorm:"column:text;type:text" json:"text"`
	Timestamp time.Time `gorm:"column:timestamp;type:timestamptz;index" json:"timestamp"`
}

func (Message) TableName() string { return "messages" }
