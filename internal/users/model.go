package users

import "time"

// User is the notification-addressing view of an account. Authentication
// lives outside this service; rows here exist so documents and reminders
// have a stable owner to reference and an email to deliver to.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
