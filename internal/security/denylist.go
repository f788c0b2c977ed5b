package security

import (
	"sync"

	"github.com/google/uuid"
)

// In-memory deny list; consider persistence for production. Used by admins
// to cut off a compromised or abusive account without deleting it.
var (
	muDenied  sync.RWMutex
	denyUsers = make(map[uuid.UUID]struct{})
)

func DenyUser(id uuid.UUID) { muDenied.Lock(); denyUsers[id] = struct{}{}; muDenied.Unlock() }

func AllowUser(id uuid.UUID) { muDenied.Lock(); delete(denyUsers, id); muDenied.Unlock() }

func IsUserDenied(id uuid.UUID) bool {
	muDenied.RLock()
	_, ok := denyUsers[id]
	muDenied.RUnlock()
	return ok
}
