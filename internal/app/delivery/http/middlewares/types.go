package middlewares

import (
	"consulat-service/internal/app/config"
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/services/shared/ratelimiter"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log             *zap.Logger
	InternalConfig  *config.InternalConfig
	SessionVerifier contracts.SessionVerifier
	RBACEnforcer    contracts.RBACEnforcer
	ResourceLimiter *ratelimiter.ResourceLimiter
}

func NewMiddlewares(
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
	sessionVerifier contracts.SessionVerifier,
	rbacEnforcer contracts.RBACEnforcer,
	resourceLimiter *ratelimiter.ResourceLimiter,
) *Middlewares {
	return &Middlewares{
		Log:             logger,
		InternalConfig:  internalConfig,
		SessionVerifier: sessionVerifier,
		RBACEnforcer:    rbacEnforcer,
		ResourceLimiter: resourceLimiter,
	}
}
