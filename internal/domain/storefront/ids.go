package storefront

import (
	"strings"

	"github.com/google/uuid"
)

const shortIDLen = 9

// ShortID returns nine lowercase hex characters drawn from a random UUID.
func ShortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:shortIDLen]
}

// PrefixedID returns ids such as ORD-1A2B3C4D5.
func PrefixedID(prefix string) string {
	return prefix + "-" + strings.ToUpper(ShortID())
}
