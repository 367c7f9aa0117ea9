package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

// ObjectKey builds a collision-resistant storage key from the upload time and
// the original filename. The random infix keeps two uploads of the same file
// within the same millisecond from colliding.
func ObjectKey(filename string) string {
	id := uuid.Must(uuid.NewV4())
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), id.String()[:8], sanitizeFilename(filename))
}

// sanitizeFilename keeps keys to a safe character set so the public URL stays
// readable and no path separators leak into the key.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "file"
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
