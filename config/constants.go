package config

import (
	"time"
)

const (
	DatabaseTimeLayout       string = time.RFC3339
	ErrNoRows                string = "no rows in result set"
	ErrEnvNodFound           string = "No .env file found"
	ErrGroupHeaderMissing    string = "X-Group-Id header is required"
	BcryptHashPasswordLength        = 60

	GroupHeader string = "X-Group-Id"

	// Task statuses
	TASK_TODO        string = "TODO"
	TASK_IN_PROGRESS string = "IN_PROGRESS"
	TASK_DONE        string = "DONE"

	// Group roles
	ROLE_OWNER  string = "OWNER"
	ROLE_MEMBER string = "MEMBER"
)

var (
	TASK_STATUSES = map[string]bool{
		TASK_TODO:        true,
		TASK_IN_PROGRESS: true,
		TASK_DONE:        true,
	}

	GROUP_ROLES = map[string]bool{
		ROLE_OWNER:  true,
		ROLE_MEMBER: true,
	}
)
