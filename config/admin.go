package config

import (
	"os"
	"strings"
)

// AdminHandles parses the comma-separated ADMIN_HANDLES list. Site
// administration is handle-based; there is no admin role column.
func AdminHandles() []string {
	var handles []string
	for _, h := range strings.Split(os.Getenv("ADMIN_HANDLES"), ",") {
		if h = strings.TrimSpace(h); h != "" {
			handles = append(handles, h)
		}
	}
	return handles
}
