package utils

import "github.com/google/uuid"

// NewID returns a fresh identifier with a short entity prefix, e.g.
// NewID("ra") -> "ra-7f9c...". Seeded demo rows use fixed short IDs
// ("u001", "ra001"); both live in the same identifier space.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
