// Package exitcode defines exit codes for the CLI.
package exitcode

import "todo/internal/service"

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task, rejected input).
	UserError = 1

	// ConfigError indicates an unreadable or invalid configuration.
	ConfigError = 2

	// BackendError indicates a server, network or transport failure.
	BackendError = 3
)

// ForAPIError maps a service failure to an exit code.
// 4xx responses are the user's doing; everything else is the backend's.
func ForAPIError(err error) int {
	if service.IsClientError(err) {
		return UserError
	}
	return BackendError
}
