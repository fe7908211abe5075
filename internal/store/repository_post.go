package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kjmin/go-board/internal/logger"
	"github.com/kjmin/go-board/models"
)

// postRepository is the PostgreSQL-backed implementation of
// [PostRepository].
type postRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPostRepository constructs a [PostRepository] backed by the provided
// database connection and logger.
func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	logger.Debug().Msg("creating post repository")
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePost persists a new post and returns it with the server-assigned
// PostID and CreatedAt.
func (r *postRepository) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createPost, post.Title, post.Content, post.Author)

	if err := row.Scan(&post.PostID, &post.Title, &post.Content, &post.Author, &post.CreatedAt); err != nil {
		log.Err(err).Str("func", "*postRepository.CreatePost").Msg("error: scanning created post")
		return models.Post{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return post, nil
}

// FindPostByID retrieves a single post.
//
// Error handling:
//   - sql.ErrNoRows → [ErrPostNotFound].
func (r *postRepository) FindPostByID(ctx context.Context, postID int64) (models.Post, error) {
	log := logger.FromContext(ctx)

	var found models.Post
	row := r.db.QueryRowContext(ctx, findPostByID, postID)

	if err := row.Scan(&found.PostID, &found.Title, &found.Content, &found.Author, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, ErrPostNotFound
		}
		log.Err(err).Str("func", "*postRepository.FindPostByID").Msg("error: scanning error")
		return models.Post{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// ListPosts returns posts matching the filter, newest first. Reading the
// board is open to everyone, so no authorization state is consulted here.
func (r *postRepository) ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPostsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.ListPosts").Msg("error building list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.ListPosts").Msg("error executing list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.PostID, &post.Title, &post.Content, &post.Author, &post.CreatedAt); err != nil {
			log.Err(err).Str("func", "*postRepository.ListPosts").Msg("error scanning post row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return posts, nil
}

// DeletePost removes a post unconditionally. Deleting a post that was
// already deleted (zero rows affected) is a no-op, not an error; the
// authorization decision happened before this call.
func (r *postRepository) DeletePost(ctx context.Context, postID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deletePost, postID); err != nil {
		log.Err(err).Str("func", "*postRepository.DeletePost").Msg("error deleting post")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}
