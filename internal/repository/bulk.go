package repository

import (
	"context"
	"fmt"

	"github.com/savedsphere/sphered/internal/domain"
)

// Bulk applies one operation to many link ids, tallying successes and
// failures per id. A failing id never aborts the others; the result
// carries an aggregate count-based message.
func (r *Repository) Bulk(ctx context.Context, op domain.BulkOperation) (domain.BulkResult, error) {
	result := domain.BulkResult{Errors: []string{}}

	apply, err := r.bulkAction(op)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Message = err.Error()
		return result, nil
	}

	for _, id := range op.LinkIDs {
		if err := apply(ctx, id); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("failed to %s link %s: %v", op.Type, id, err))
			continue
		}
		result.ProcessedCount++
	}

	result.Success = len(result.Errors) == 0
	if result.Success {
		result.Message = fmt.Sprintf("successfully processed %d links", result.ProcessedCount)
	} else {
		result.Message = fmt.Sprintf("processed %d links with %d errors",
			result.ProcessedCount, len(result.Errors))
	}
	return result, nil
}

var errLinkNotFound = fmt.Errorf("link not found")

// bulkAction maps the operation type to a per-id mutation. Not-found
// sentinels from the underlying operations are turned into errors here
// so the tally reflects them.
func (r *Repository) bulkAction(op domain.BulkOperation) (func(context.Context, string) error, error) {
	switch op.Type {
	case domain.BulkMove:
		if op.TargetFolderID == "" {
			return nil, fmt.Errorf("target folder id is required for move operations")
		}
		return func(ctx context.Context, id string) error {
			target := op.TargetFolderID
			updated, err := r.UpdateLink(ctx, id, domain.LinkPatch{FolderID: &target})
			if err != nil {
				return err
			}
			if updated == nil {
				return errLinkNotFound
			}
			return nil
		}, nil

	case domain.BulkDelete:
		return r.boolAction(r.DeleteLink), nil

	case domain.BulkFavorite, domain.BulkUnfavorite:
		fav := op.Type == domain.BulkFavorite
		return func(ctx context.Context, id string) error {
			updated, err := r.UpdateLink(ctx, id, domain.LinkPatch{IsFavorite: &fav})
			if err != nil {
				return err
			}
			if updated == nil {
				return errLinkNotFound
			}
			return nil
		}, nil

	case domain.BulkRestore:
		return r.boolAction(r.RestoreLink), nil

	case domain.BulkPermanentDelete:
		return r.boolAction(r.PermanentlyDeleteLink), nil

	default:
		return nil, fmt.Errorf("unknown bulk operation type: %s", op.Type)
	}
}

func (r *Repository) boolAction(fn func(context.Context, string) (bool, error)) func(context.Context, string) error {
	return func(ctx context.Context, id string) error {
		ok, err := fn(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return errLinkNotFound
		}
		return nil
	}
}
