package ids

import (
	mathrand "math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// New returns a lexicographically sortable 26 character identifier. Catalog
// entries, permissions and roles are keyed with it.
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// NewUUID returns a random identifier for tenants, users and pivots.
func NewUUID() string {
	return uuid.NewString()
}

// IsULID reports whether id is a well formed ULID.
func IsULID(id string) bool {
	_, err := ulid.ParseStrict(strings.TrimSpace(id))
	return err == nil
}

// IsUUID reports whether id parses as a UUID.
func IsUUID(id string) bool {
	return uuid.Validate(strings.TrimSpace(id)) == nil
}

// Generator yields identifiers. Loaders take one so tests can pin ids.
type Generator func() string
