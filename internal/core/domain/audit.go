package domain

import "time"

// Auth event actions recorded in the audit trail.
const (
	AuditLogin    = "login"
	AuditRegister = "register"
	AuditRefresh  = "refresh"
	AuditMigrate  = "migrate_credentials"
)

// AuthEvent is a single entry in the authentication audit trail.
type AuthEvent struct {
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Success   bool      `json:"success"`
	Reason    string    `json:"reason,omitempty"`
	RemoteIP  string    `json:"remote_ip,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
