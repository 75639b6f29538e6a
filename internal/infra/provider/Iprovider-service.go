package provider

import (
	"context"

	"github.com/zensend/zensend-go/zensend"
)

// ISmsProvider is the subset of the ZenSend API the CLI commands use.
// *zensend.Client satisfies it.
type ISmsProvider interface {
	SendSMS(ctx context.Context, msg zensend.Message) (*zensend.SmsResult, error)
	CreateKeyword(ctx context.Context, req zensend.CreateKeywordRequest) (*zensend.CreateKeywordResult, error)
	CheckBalance(ctx context.Context) (float64, error)
	GetPrices(ctx context.Context) (map[string]float64, error)
	LookupOperator(ctx context.Context, number string) (*zensend.OperatorLookupResult, error)
	CreateSubAccount(ctx context.Context, name string) (*zensend.SubAccountResult, error)
}

var _ ISmsProvider = (*zensend.Client)(nil)
