package data

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/target/carematch-ui/internal/domain/application"
	apperrors "github.com/target/carematch-ui/internal/errors"
	"github.com/target/carematch-ui/internal/ports"
)

// displayRenames maps backend statuses to the label shown to users.
var displayRenames = map[string]string{
	application.StatusHired: "Approved",
}

// DisplayStatus is the presentation name of status. Every display path goes
// through here so the rename exists in exactly one place.
func DisplayStatus(status string) string {
	if renamed, ok := displayRenames[status]; ok {
		return renamed
	}
	return status
}

type overrideMap = map[string]application.StatusOverride

// StatusCache is the local status override overlay of one browser context. The
// whole mapping lives under KeyStatusUpdates and is rewritten on every change.
type StatusCache struct {
	kv     ports.KVStore
	clock  TimeProvider
	logger *slog.Logger
}

var _ ports.StatusCache = (*StatusCache)(nil)

// StatusCacheOption configures a StatusCache.
type StatusCacheOption func(*StatusCache)

// WithClock sets the time source used to stamp overrides.
func WithClock(clock TimeProvider) StatusCacheOption {
	return func(c *StatusCache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithStatusLogger sets the logger used for corruption diagnostics.
func WithStatusLogger(logger *slog.Logger) StatusCacheOption {
	return func(c *StatusCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewStatusCache creates a StatusCache over kv.
func NewStatusCache(kv ports.KVStore, opts ...StatusCacheOption) *StatusCache {
	if kv == nil {
		panic("KVStore is required")
	}
	c := &StatusCache{kv: kv, clock: RealTimeProvider{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "status_cache")
	return c
}

// entityKey is the form entity ids are stored and looked up under.
func entityKey(id string) string { return strings.TrimSpace(id) }

// StoreUpdate records status for entityID, replacing any previous override.
// Any status is kept verbatim, including the empty string.
// The read-modify-write of the mapping runs as one KVStore.Update.
func (c *StatusCache) StoreUpdate(ctx context.Context, entityID, status string) (application.StatusOverride, error) {
	entityID = entityKey(entityID)
	if entityID == "" {
		return application.StatusOverride{}, apperrors.ValidationField("entityId", "entity id is required")
	}

	override := application.StatusOverride{
		EntityID:      entityID,
		Status:        status,
		DisplayStatus: DisplayStatus(status),
		RecordedAt:    c.clock.Now().UTC(),
	}

	err := c.kv.Update(ctx, KeyStatusUpdates, func(current []byte) ([]byte, error) {
		overrides, decodeErr := DecodeOr(current, JSON[overrideMap], nil)
		if decodeErr != nil {
			c.logger.WarnContext(ctx, "status overrides corrupt, starting a fresh mapping", "error", decodeErr)
		}
		if overrides == nil {
			overrides = overrideMap{}
		}
		overrides[entityID] = override
		return EncodeJSON(overrides)
	})
	if err != nil {
		return application.StatusOverride{}, fmt.Errorf("store status override: %w", err)
	}

	c.logger.DebugContext(ctx, "stored status override", "entity_id", entityID, "status", status)
	return override, nil
}

// Get returns the override for entityID. Callers fall back to the server
// status when ok is false.
func (c *StatusCache) Get(ctx context.Context, entityID string) (application.StatusOverride, bool) {
	entityID = entityKey(entityID)
	if entityID == "" {
		return application.StatusOverride{}, false
	}
	override, ok := c.load(ctx)[entityID]
	return override, ok
}

// All returns a snapshot of every override keyed by the trimmed entity id.
func (c *StatusCache) All(ctx context.Context) map[string]application.StatusOverride {
	return c.load(ctx)
}

// ClearAll drops every override.
func (c *StatusCache) ClearAll(ctx context.Context) error {
	if err := c.kv.DeleteMany(ctx, KeyStatusUpdates); err != nil {
		return fmt.Errorf("clear status overrides: %w", err)
	}
	return nil
}

// DisplayStatus implements ports.StatusCache.
func (c *StatusCache) DisplayStatus(status string) string { return DisplayStatus(status) }

// load never fails: unreadable or corrupt state is logged and reads as empty.
func (c *StatusCache) load(ctx context.Context) overrideMap {
	raw, _, err := c.kv.Get(ctx, KeyStatusUpdates)
	if err != nil {
		c.logger.WarnContext(ctx, "status overrides unreadable, treating as empty", "error", err)
		return overrideMap{}
	}

	overrides, err := DecodeOr(raw, JSON[overrideMap], overrideMap{})
	if err != nil {
		c.logger.WarnContext(ctx, "status overrides corrupt, treating as empty", "error", err)
		return overrideMap{}
	}

	out := make(overrideMap, len(overrides))
	for id, o := range overrides {
		o.EntityID = id
		out[id] = o
	}
	return out
}
