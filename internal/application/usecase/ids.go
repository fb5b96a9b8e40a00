package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newID genera ids "<prefix>_<ms>_<aleatorio>" como los que ya existen en contacts.db.
func newID(prefix string, now time.Time) string {
	r := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), r)
}
