package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrLinkExists reports a duplicate URL among active links.
	ErrLinkExists = errors.New("link already exists")

	// ErrSystemFolder reports an attempt to edit or delete a
	// system-managed folder.
	ErrSystemFolder = errors.New("system folders cannot be modified")

	// ErrFolderCycle reports a reparent that would make a folder its
	// own ancestor.
	ErrFolderCycle = errors.New("folder cannot be moved under itself or a descendant")
)

// duplicateLinkError wraps ErrLinkExists with where the existing link
// lives, so the caller can surface a precise conflict message.
func duplicateLinkError(folderID string) error {
	location := "All Links"
	if folderID != "" {
		location = "a folder"
	}
	return fmt.Errorf("%w in %s", ErrLinkExists, location)
}
