package instance

import "os"

// GetID returns the identifier of this server instance or a default value.
func GetID() string {
	if id := os.Getenv("STITCHBAY_INSTANCE_ID"); id != "" {
		return id
	}
	return "local"
}
