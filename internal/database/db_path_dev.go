//go:build !prod

package database

// GetDefaultDBPath returns the database path for development mode.
// In dev mode, the database lives in the working directory for easy access and debugging.
func GetDefaultDBPath() string {
	return "linkeep.db"
}

func IsDevelopment() bool {
	return true
}
