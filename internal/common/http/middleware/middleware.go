package middleware

import (
	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/repositories"
)

type AppMiddleware struct {
	conf      config.Config
	cacheRepo repositories.CacheRepository
}

func NewMiddleware(conf config.Config, cacheRepo repositories.CacheRepository) AppMiddleware {
	return AppMiddleware{
		conf:      conf,
		cacheRepo: cacheRepo,
	}
}
