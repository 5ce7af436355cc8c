// Package identity models the external org-directory collaborator. The
// directory owns the user/manager hierarchy; this service only reads it.
package identity

import "context"

// DirectoryUser is a user record as returned by the directory service
type DirectoryUser struct {
	UserID     string   `json:"userId"`
	Name       string   `json:"name"`
	Role       string   `json:"role"`
	Practice   string   `json:"practice"`
	EmployeeID string   `json:"employeeId"`
	ManagerID  string   `json:"managerId"`
	Mail       string   `json:"mail"`
	Reportings []string `json:"reportings"`
}

// DirectoryService resolves a user's manager chain. Timeouts and retries are
// the client's responsibility; callers treat any failure as fatal for the
// requesting operation.
type DirectoryService interface {
	// GetManagers returns the manager-chain records for the given user
	GetManagers(ctx context.Context, userID string) ([]DirectoryUser, error)
}

// ManagerIDs extracts the user identifiers from a manager list
func ManagerIDs(managers []DirectoryUser) []string {
	ids := make([]string, 0, len(managers))
	for _, m := range managers {
		ids = append(ids, m.UserID)
	}
	return ids
}
