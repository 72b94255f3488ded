package dnd

import (
	"context"
	"fmt"

	"github.com/bnema/sidebar/internal/domain/entity"
)

// FolderReader lists the children of a bookmark folder.
type FolderReader interface {
	Children(ctx context.Context, id entity.BookmarkID) ([]*entity.Bookmark, error)
}

// CollectURLs returns every URL a session represents, in drag order.
// Bookmark folders are expanded recursively into their leaf links.
func CollectURLs(ctx context.Context, s *Session, folders FolderReader) ([]URLData, error) {
	var out []URLData
	for _, it := range s.items {
		if it.Bookmark != nil && it.Bookmark.Folder {
			urls, err := collectFolder(ctx, it.Bookmark.BookmarkID, folders)
			if err != nil {
				return nil, err
			}
			out = append(out, urls...)
			continue
		}
		if it.Has(FormatURL) && it.URL != nil && it.URL.URL != "" {
			out = append(out, *it.URL)
		}
	}
	return out, nil
}

func collectFolder(ctx context.Context, id entity.BookmarkID, folders FolderReader) ([]URLData, error) {
	if folders == nil {
		return nil, nil
	}
	children, err := folders.Children(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder %s: %w", id, err)
	}
	var out []URLData
	for _, c := range children {
		if c.IsFolder() {
			sub, err := collectFolder(ctx, c.ID, folders)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
			continue
		}
		if c.URL != "" {
			out = append(out, URLData{URL: c.URL, Title: c.Title})
		}
	}
	return out, nil
}
