package handler

import (
	"github.com/kjmin/go-board/internal/config"
	"github.com/kjmin/go-board/internal/handler/http"
	"github.com/kjmin/go-board/internal/logger"
	"github.com/kjmin/go-board/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
