// Package store defines the key-value persistence adapter. Collections
// are persisted whole, as JSON blobs under fixed keys; every write
// emits a change notification so other parts of the process (and other
// processes sharing the same backend) can react without polling.
package store

import "context"

// Store is the durable key-value backend. Implementations must notify
// subscribers on every Set and Delete.
type Store interface {
	// Get returns the raw value for key, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value for key and notifies subscribers.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key and notifies subscribers.
	Delete(ctx context.Context, key string) error

	// Subscribe registers a change observer. The callback receives the
	// key that changed; it may be invoked from any goroutine. The
	// returned function cancels the subscription.
	Subscribe(fn func(key string)) (cancel func())
}

// Fixed keys for the persisted collections.
const (
	KeyLinks        = "sphere:links"
	KeyFolders      = "sphere:folders"
	KeyTags         = "sphere:tags"
	KeyPreferences  = "sphere:preferences"
	KeyDeletedLinks = "sphere:deleted-links"
	KeySidebarState = "sphere:sidebar-state"
	KeyPlatformInit = "sphere:platform-folders-init"
)

// DataKeys lists the keys holding entity collections, in no particular
// order. Used by clear-all and by consumers that only care about data
// changes.
var DataKeys = []string{
	KeyLinks,
	KeyFolders,
	KeyTags,
	KeyPreferences,
	KeyDeletedLinks,
	KeySidebarState,
	KeyPlatformInit,
}
