package config

import (
	"fmt"
	"os"
	"strings"
)

// MissingError lists every required setting that is absent.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Keys, ", "))
}

// Validate checks the environment once, before the server starts. It reports
// all missing settings together instead of stopping at the first one.
func Validate() error {
	var missing []string

	hasConnString := strings.TrimSpace(os.Getenv("STORAGE_CONNECTION_STRING")) != ""
	hasPair := os.Getenv("STORAGE_ACCOUNT") != "" && os.Getenv("STORAGE_KEY") != ""
	if !hasConnString && !hasPair {
		missing = append(missing, "STORAGE_CONNECTION_STRING or (STORAGE_ACCOUNT and STORAGE_KEY)")
	}
	for _, key := range []string{"STORAGE_CONTAINER", "DB_HOST", "DB_PASSWORD", "DB_NAME", "DB_COLLECTION"} {
		if strings.TrimSpace(os.Getenv(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &MissingError{Keys: missing}
	}

	if _, err := readStorageConfig(); err != nil {
		return err
	}
	return nil
}
