package ports

import (
	"context"
	"time"

	"github.com/intelicop/console/internal/core/domain"
)

// KeyValueStore is the persisted area the session and preferences live in.
// Get reports found=false for a missing key; that is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// IdentityCodec turns an identity into the blob kept in the store.
type IdentityCodec interface {
	Encode(id domain.Identity) (string, error)
	Decode(blob string) (domain.Identity, error)
}

type Clock interface {
	Now() time.Time
}

// Confirmer asks the operator before an irreversible action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}
