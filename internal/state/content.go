package state

import (
	"context"
	"slices"

	"github.com/mathenaangeles/socialite/internal/api"
	"github.com/mathenaangeles/socialite/internal/models"
)

const (
	opContentCreate = "content/create"
	opContentGet    = "content/get"
	opContentUpdate = "content/update"
	opContentDelete = "content/delete"
	opContentList   = "content/list"
)

type contentAction struct {
	op       string
	phase    Phase
	seq      uint64
	err      string
	content  *models.Content
	contents []models.Content
	id       string
}

func reduceContent(cache ContentCache, a contentAction) ContentCache {
	switch a.phase {
	case Pending:
		cache.Loading = true
		cache.Error = ""
	case Rejected:
		cache.Loading = false
		cache.Error = a.err
	case Fulfilled:
		cache.Loading = false
		cache.Error = ""
		switch a.op {
		case opContentCreate:
			cache.Content = a.content
			cache.Contents = append(slices.Clone(cache.Contents), *a.content)
		case opContentGet:
			cache.Content = a.content
		case opContentUpdate:
			cache.Content = a.content
			cache.Contents = replaceContent(cache.Contents, *a.content)
		case opContentDelete:
			cache.Contents = removeContent(cache.Contents, a.id)
		case opContentList:
			cache.Contents = a.contents
		}
	}
	return cache
}

func replaceContent(list []models.Content, content models.Content) []models.Content {
	out := slices.Clone(list)
	for i := range out {
		if out[i].ID == content.ID {
			out[i] = content
			break
		}
	}
	return out
}

func removeContent(list []models.Content, id string) []models.Content {
	out := make([]models.Content, 0, len(list))
	for _, c := range list {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) dispatchContentPending(op string) uint64 {
	s.mu.Lock()
	seq := s.beginLocked(op)
	s.state.Content = reduceContent(s.state.Content, contentAction{op: op, phase: Pending, seq: seq})
	s.finishLocked()
	return seq
}

func (s *Store) dispatchContent(a contentAction) {
	s.mu.Lock()
	if s.staleLocked(a.op, a.seq) {
		s.mu.Unlock()
		dropStale(a.op)
		return
	}
	s.state.Content = reduceContent(s.state.Content, a)
	s.finishLocked()
}

func (s *Store) runContent(ctx context.Context, op string, call func(context.Context) (*models.Content, error)) (*models.Content, error) {
	seq := s.dispatchContentPending(op)
	content, err := call(ctx)
	if err != nil {
		s.dispatchContent(contentAction{op: op, phase: Rejected, seq: seq, err: err.Error()})
		return nil, err
	}
	s.dispatchContent(contentAction{op: op, phase: Fulfilled, seq: seq, content: content})
	return content, nil
}

// CreateContent creates a content item and caches it.
func (s *Store) CreateContent(ctx context.Context, params api.ContentParams) (*models.Content, error) {
	return s.runContent(ctx, opContentCreate, func(ctx context.Context) (*models.Content, error) {
		return s.api.CreateContent(ctx, params)
	})
}

// GetContent fetches one content item into the current slot.
func (s *Store) GetContent(ctx context.Context, id string) (*models.Content, error) {
	return s.runContent(ctx, opContentGet, func(ctx context.Context) (*models.Content, error) {
		return s.api.Content(ctx, id)
	})
}

// UpdateContent updates a content item and refreshes the matching list entry.
func (s *Store) UpdateContent(ctx context.Context, id string, params api.ContentParams) (*models.Content, error) {
	return s.runContent(ctx, opContentUpdate, func(ctx context.Context) (*models.Content, error) {
		return s.api.UpdateContent(ctx, id, params)
	})
}

// DeleteContent deletes a content item and drops it from the list.
func (s *Store) DeleteContent(ctx context.Context, id string) error {
	seq := s.dispatchContentPending(opContentDelete)
	deletedID, err := s.api.DeleteContent(ctx, id)
	if err != nil {
		s.dispatchContent(contentAction{op: opContentDelete, phase: Rejected, seq: seq, err: err.Error()})
		return err
	}
	s.dispatchContent(contentAction{op: opContentDelete, phase: Fulfilled, seq: seq, id: deletedID})
	return nil
}

// ListContents replaces the cached list with the server's.
func (s *Store) ListContents(ctx context.Context) ([]models.Content, error) {
	seq := s.dispatchContentPending(opContentList)
	contents, err := s.api.Contents(ctx)
	if err != nil {
		s.dispatchContent(contentAction{op: opContentList, phase: Rejected, seq: seq, err: err.Error()})
		return nil, err
	}
	s.dispatchContent(contentAction{op: opContentList, phase: Fulfilled, seq: seq, contents: contents})
	return contents, nil
}
