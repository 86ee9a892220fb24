package domain

// BulkOperationType enumerates the supported bulk actions.
type BulkOperationType string

const (
	BulkMove            BulkOperationType = "move"
	BulkDelete          BulkOperationType = "delete"
	BulkFavorite        BulkOperationType = "favorite"
	BulkUnfavorite      BulkOperationType = "unfavorite"
	BulkRestore         BulkOperationType = "restore"
	BulkPermanentDelete BulkOperationType = "permanentDelete"
)

// BulkOperation applies one action to many links at once.
type BulkOperation struct {
	Type           BulkOperationType `json:"type"`
	LinkIDs        []string          `json:"linkIds"`
	TargetFolderID string            `json:"targetFolderId,omitempty"` // move only
}

// BulkResult tallies a bulk operation per ID. One failing ID never
// aborts the others.
type BulkResult struct {
	Success        bool     `json:"success"`
	ProcessedCount int      `json:"processedCount"`
	Errors         []string `json:"errors"`
	Message        string   `json:"message"`
}
