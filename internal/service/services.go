package service

import (
	"github.com/kjmin/go-board/internal/config"
	"github.com/kjmin/go-board/internal/logger"
	"github.com/kjmin/go-board/internal/store"
)

type Services struct {
	AuthService    AuthService
	AccountService AccountService
	PostService    PostService
}

func NewServices(repositories *store.Repositories, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(repositories.AccountRepository, cfg.App, logger),
		AccountService: NewAccountService(repositories.AccountRepository, logger),
		PostService:    NewPostService(repositories.PostRepository, logger),
	}
}
