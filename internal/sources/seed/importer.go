package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/savedsphere/sphered/internal/domain"
	"github.com/savedsphere/sphered/internal/logger"
	"github.com/savedsphere/sphered/internal/repository"
)

// Importer loads a seed file into the repository. Imports are
// idempotent: links whose URL already exists are skipped, folders are
// matched by name before being created.
type Importer struct {
	repo   *repository.Repository
	logger logger.Logger
}

func NewImporter(repo *repository.Repository, log logger.Logger) *Importer {
	return &Importer{repo: repo, logger: log}
}

// Import creates the file's folders and links. It returns the number
// of links actually created.
func (im *Importer) Import(ctx context.Context, file *File) (int, error) {
	folderIDs, err := im.importFolders(ctx, file.Folders)
	if err != nil {
		return 0, err
	}

	existing, err := im.repo.GetLinks(ctx)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(existing))
	for _, l := range existing {
		seen[l.URL] = true
	}

	created := 0
	for _, entry := range file.Links {
		if entry.URL == "" {
			continue
		}
		if seen[entry.URL] {
			im.logger.Debug("seed link already present, skipping",
				logger.String("url", entry.URL))
			continue
		}

		folderID := ""
		if entry.Folder != "" {
			id, ok := folderIDs[entry.Folder]
			if !ok {
				id, err = im.ensureFolder(ctx, FolderEntry{Name: entry.Folder})
				if err != nil {
					return created, err
				}
				folderIDs[entry.Folder] = id
			}
			folderID = id
		}

		link, err := im.repo.SaveLink(ctx, domain.LinkForm{
			URL:         entry.URL,
			Title:       entry.Title,
			Description: entry.Description,
			Tags:        entry.Tags,
			FolderID:    folderID,
		})
		if err != nil {
			if errors.Is(err, repository.ErrLinkExists) {
				continue
			}
			return created, fmt.Errorf("failed to seed link %s: %w", entry.URL, err)
		}
		seen[entry.URL] = true
		created++

		if entry.Favorite {
			if _, err := im.repo.ToggleFavorite(ctx, link.ID); err != nil {
				return created, err
			}
		}
	}

	im.logger.Info("seed import finished",
		logger.Int("links_created", created),
		logger.Int("links_total", len(file.Links)))
	return created, nil
}

// importFolders creates the declared folders in file order and returns
// a name to id index covering both new and pre-existing folders.
func (im *Importer) importFolders(ctx context.Context, entries []FolderEntry) (map[string]string, error) {
	folders, err := im.repo.GetFolders(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]string, len(folders))
	for _, f := range folders {
		ids[f.Name] = f.ID
	}

	for _, entry := range entries {
		if entry.Name == "" {
			continue
		}
		if _, ok := ids[entry.Name]; ok {
			continue
		}

		form := domain.FolderForm{
			Name:  entry.Name,
			Color: entry.Color,
			Icon:  entry.Icon,
		}
		if entry.Parent != "" {
			parentID, ok := ids[entry.Parent]
			if !ok {
				return nil, fmt.Errorf("seed folder %q references unknown parent %q", entry.Name, entry.Parent)
			}
			form.ParentID = parentID
		}

		folder, err := im.repo.SaveFolder(ctx, form)
		if err != nil {
			return nil, fmt.Errorf("failed to seed folder %s: %w", entry.Name, err)
		}
		ids[entry.Name] = folder.ID
	}

	return ids, nil
}

func (im *Importer) ensureFolder(ctx context.Context, entry FolderEntry) (string, error) {
	folder, err := im.repo.SaveFolder(ctx, domain.FolderForm{
		Name:  entry.Name,
		Color: entry.Color,
		Icon:  entry.Icon,
	})
	if err != nil {
		return "", fmt.Errorf("failed to seed folder %s: %w", entry.Name, err)
	}
	return folder.ID, nil
}
