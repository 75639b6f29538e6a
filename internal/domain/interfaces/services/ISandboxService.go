package Iservices

import (
	"context"

	"github.com/zensend/zensend-go/internal/domain/dto"
	"github.com/zensend/zensend-go/internal/domain/entities"
)

// ISandboxService implements the /v3 API rules. Rejections are *dto.Failure.
type ISandboxService interface {
	SendSMS(ctx context.Context, req dto.SendSMSRequest) (dto.SmsResponse, error)
	CreateKeyword(ctx context.Context, req dto.CreateKeywordRequest) (dto.CreateKeywordResponse, error)
	CheckBalance(ctx context.Context) (dto.BalanceResponse, error)
	GetPrices(ctx context.Context) (dto.PricesResponse, error)
	LookupOperator(ctx context.Context, req dto.OperatorLookupRequest) (dto.OperatorLookupResponse, error)
	CreateSubAccount(ctx context.Context, req dto.CreateSubAccountRequest) (dto.SubAccountResponse, error)
	ListMessages(ctx context.Context) ([]entities.SentMessage, error)
}
