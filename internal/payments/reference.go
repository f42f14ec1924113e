package payments

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// generateReference builds a globally unique gateway reference:
// timestamp plus a random suffix. The unique index on the column backs
// up the randomness.
func generateReference() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("BKM-%d-%s", time.Now().UnixMilli(), strings.ToUpper(suffix))
}
