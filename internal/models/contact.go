package models

import "time"

// ContactMessage is a submission of the public contact form.
type ContactMessage struct {
	ID        string    `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Email     string    `db:"email" json:"email"`
	Message   string    `db:"message" json:"message"`
	IPAddress string    `db:"ip_address" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
