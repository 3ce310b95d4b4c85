package posts

import (
	"context"
	"sort"
	"sync"

	"github.com/fullsco/fullsco/internal/crud"
)

// MemoryTagLinkStore keeps join rows in memory for tests.
type MemoryTagLinkStore struct {
	mu    sync.Mutex
	posts crud.Repository[*Post]
	links map[int64][]int64
}

func NewMemoryTagLinkStore(posts crud.Repository[*Post]) *MemoryTagLinkStore {
	return &MemoryTagLinkStore{
		posts: posts,
		links: make(map[int64][]int64),
	}
}

func (s *MemoryTagLinkStore) Replace(_ context.Context, postID int64, tagIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(tagIDs) == 0 {
		delete(s.links, postID)
		return nil
	}
	copied := make([]int64, len(tagIDs))
	copy(copied, tagIDs)
	sort.Slice(copied, func(i, j int) bool { return copied[i] < copied[j] })
	s.links[postID] = copied
	return nil
}

func (s *MemoryTagLinkStore) TagIDs(_ context.Context, postID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.links[postID]
	out := make([]int64, len(ids))
	copy(out, ids)
	return out, nil
}

func (s *MemoryTagLinkStore) DeletePost(ctx context.Context, postID int64) error {
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.links, postID)
	s.mu.Unlock()
	return nil
}
