package posts

import (
	"context"
	"errors"
	"fmt"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
)

var ErrDuplicateTag = errors.New("posts: duplicate tag id")

// TagLinkStore persists the post/tag join rows. Replace and DeletePost are
// multi-statement writes and must be atomic.
type TagLinkStore interface {
	Replace(ctx context.Context, postID int64, tagIDs []int64) error
	TagIDs(ctx context.Context, postID int64) ([]int64, error)
	// DeletePost removes the join rows and the post itself in one
	// transaction so a post delete can never strand join rows.
	DeletePost(ctx context.Context, postID int64) error
}

// Service wraps the generic post and tag services with the join-table
// workflows the generic layer cannot express.
type Service struct {
	Posts *crud.Service[*Post]
	Tags  *crud.Service[*Tag]
	links TagLinkStore
	log   logging.Logger
}

func NewService(postRepo crud.Repository[*Post], tagRepo crud.Repository[*Tag], links TagLinkStore, log logging.Logger) *Service {
	return &Service{
		Posts: crud.NewService(postRepo, "post", PostHandlers(),
			crud.WithLogger[*Post](log),
			crud.WithValidator(func(p *Post) error {
				if p.Status == "" {
					p.Status = StatusDraft
				}
				return validatePost(p)
			}),
		),
		Tags: crud.NewService(tagRepo, "tag", TagHandlers(),
			crud.WithLogger[*Tag](log),
			crud.WithValidator(validateTag),
		),
		links: links,
		log:   log,
	}
}

// SetTags replaces the post's tag set. Every id must name an existing tag
// and appear once.
func (s *Service) SetTags(ctx context.Context, postID int64, tagIDs []int64) error {
	if _, err := s.Posts.Get(ctx, postID); err != nil {
		return err
	}

	seen := make(map[int64]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		if _, dup := seen[id]; dup {
			return crud.WrapValidationError(fmt.Errorf("%w: %d", ErrDuplicateTag, id))
		}
		seen[id] = struct{}{}
		if _, err := s.Tags.Get(ctx, id); err != nil {
			return err
		}
	}

	if err := s.links.Replace(ctx, postID, tagIDs); err != nil {
		s.log.Error("tag replace failed", "post", postID, "error", err)
		return err
	}
	return nil
}

// TagsFor returns the post's tags in join order.
func (s *Service) TagsFor(ctx context.Context, postID int64) ([]*Tag, error) {
	if _, err := s.Posts.Get(ctx, postID); err != nil {
		return nil, err
	}
	ids, err := s.links.TagIDs(ctx, postID)
	if err != nil {
		return nil, err
	}
	tags := make([]*Tag, 0, len(ids))
	for _, id := range ids {
		tag, err := s.Tags.Get(ctx, id)
		if err != nil {
			if crud.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Delete removes the post and its join rows together.
func (s *Service) Delete(ctx context.Context, postID int64) error {
	if err := s.links.DeletePost(ctx, postID); err != nil {
		if !crud.IsNotFound(err) {
			s.log.Error("post delete failed", "post", postID, "error", err)
		}
		return err
	}
	return nil
}
