// Package entity contains the core business objects of the project.
package entity

// Notification statuses.
const (
	NotificationUnread = "unread"
	NotificationRead   = "read"
)

// Notification is a digest message appended to a user during a notification
// pass. The ID is unique within the owning user only, not globally. The
// timestamp is persisted verbatim as an RFC 3339 UTC string.
type Notification struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
