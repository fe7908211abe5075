package service

import (
	"context"

	"github.com/kjmin/go-board/models"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (models.Account, error)
	Verify(ctx context.Context, username, password string) (models.Account, error)
	CreateToken(ctx context.Context, account models.Account) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AccountService interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	AddAccount(ctx context.Context, username, password string) (models.Account, error)
	DeleteAccount(ctx context.Context, accountID int64) error
	ChangeRole(ctx context.Context, accountID int64, role models.Role) error
	ResetPassword(ctx context.Context, accountID int64) error
}

type PostService interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, identity models.Identity, title, content string) (models.Post, error)
	DeletePost(ctx context.Context, identity models.Identity, postID int64) error
}
