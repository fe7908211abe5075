package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kjmin/go-board/internal/authz"
	"github.com/kjmin/go-board/internal/logger"
	"github.com/kjmin/go-board/internal/store"
	"github.com/kjmin/go-board/models"
)

// postService is the concrete implementation of PostService. Unlike the
// account surface, post deletion carries an ownership rule, so the service
// consults the authz engine with the acting identity before touching storage.
type postService struct {
	postRepository store.PostRepository
	logger         *logger.Logger
}

// NewPostService constructs a new PostService wired to the given
// PostRepository.
func NewPostService(postRepository store.PostRepository, logger *logger.Logger) PostService {
	return &postService{
		postRepository: postRepository,
		logger:         logger,
	}
}

// ListPosts returns all posts, newest first.
func (p *postService) ListPosts(ctx context.Context) ([]models.Post, error) {
	log := logger.FromContext(ctx)

	posts, err := p.postRepository.ListPosts(ctx, store.PostFilter{})
	if err != nil {
		log.Err(err).Msg("post listing ended with error")
		return nil, fmt.Errorf("post listing ended with error: %w", err)
	}

	return posts, nil
}

// CreatePost stores a new post authored by the acting identity.
//
// Title and content are trimmed of surrounding whitespace first; if either
// is empty after trimming the submission is rejected with
// ErrInvalidDataProvided and nothing is written. The author is recorded as
// the identity's username, never taken from the submission itself.
func (p *postService) CreatePost(ctx context.Context, identity models.Identity, title, content string) (models.Post, error) {
	log := logger.FromContext(ctx)

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		log.Error().Str("author", identity.Username).Msg("empty title or content submitted")
		return models.Post{}, ErrInvalidDataProvided
	}

	createdPost, err := p.postRepository.CreatePost(ctx, models.Post{
		Title:   title,
		Content: content,
		Author:  identity.Username,
	})
	if err != nil {
		log.Err(err).Str("author", identity.Username).Msg("post creation ended with error")
		return models.Post{}, fmt.Errorf("post creation ended with error: %w", err)
	}

	return createdPost, nil
}

// DeletePost removes the post with the given id on behalf of the acting
// identity.
//
// Admins may delete any post; users only their own, where ownership is
// matched by the identity's username against the stored author name.
// Deleting a post that does not exist is a successful no-op: the desired
// end state (no such post) already holds.
//
// Returns nil on success or authz.ErrForbidden if the identity may not
// delete this post.
func (p *postService) DeletePost(ctx context.Context, identity models.Identity, postID int64) error {
	log := logger.FromContext(ctx)

	post, err := p.postRepository.FindPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			log.Info().Int64("id", postID).Msg("post already absent, nothing to delete")
			return nil
		}
		log.Err(err).Int64("id", postID).Msg("post lookup ended with error")
		return fmt.Errorf("post lookup ended with error: %w", err)
	}

	decision := authz.Decide(&identity, authz.OpDeletePost, authz.Target{PostAuthor: post.Author})
	if !decision.Allowed {
		log.Error().
			Int64("id", postID).
			Str("actor", identity.Username).
			Str("author", post.Author).
			AnErr("reason", decision.Reason).
			Msg("post deletion denied")
		return authz.ErrForbidden
	}

	if err := p.postRepository.DeletePost(ctx, postID); err != nil {
		log.Err(err).Int64("id", postID).Msg("post deletion ended with error")
		return fmt.Errorf("post deletion ended with error: %w", err)
	}

	log.Info().Int64("id", postID).Str("actor", identity.Username).Msg("post deleted")
	return nil
}
