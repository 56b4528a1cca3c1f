package contracts

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"context"
)

type CallUsecase interface {
	StartCall(ctx context.Context, session *models.Session, request *requests.StartCall) (*responses.Call, error)
}

type TelephonyClient interface {
	StartOutboundCall(ctx context.Context, aircallUserID, numberID, to string) error
}
