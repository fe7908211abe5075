package store

import (
	"context"

	"github.com/kjmin/go-board/models"
)

// AccountRepository is the persistence contract for board accounts.
//
// UpdateRole and DeleteAccount enforce the last-admin invariant inside
// their own transaction: the admin count and the prospective write share
// one transaction so that two concurrent demotions cannot both pass the
// check.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	FindAccountByUsername(ctx context.Context, username string) (models.Account, error)
	FindAccountByID(ctx context.Context, accountID int64) (models.Account, error)
	ListAccounts(ctx context.Context, filter AccountFilter) ([]models.Account, error)
	UpdatePassword(ctx context.Context, accountID int64, passwordHash string) error
	UpdateRole(ctx context.Context, accountID int64, newRole models.Role) error
	DeleteAccount(ctx context.Context, accountID int64) error
}

// PostRepository is the persistence contract for board posts.
type PostRepository interface {
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	FindPostByID(ctx context.Context, postID int64) (models.Post, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error)
	DeletePost(ctx context.Context, postID int64) error
}
