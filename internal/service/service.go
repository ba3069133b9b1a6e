package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/hondana-app/library-service/internal/repository"
)

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	jwtCfg JWTConfig
}

func NewService(repo repository.Repository, jwtCfg JWTConfig, log *zap.Logger) *Service {
	return &Service{
		log:    log,
		repo:   repo,
		jwtCfg: jwtCfg,
	}
}
