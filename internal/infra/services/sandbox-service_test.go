package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zensend/zensend-go/internal/domain/dto"
	"github.com/zensend/zensend-go/internal/domain/entities"
	"github.com/zensend/zensend-go/internal/domain/interfaces/repository"
	"github.com/zensend/zensend-go/internal/infra/logger"
)

func newTestService(t *testing.T, mutate func(*entities.Account)) *SandboxService {
	t.Helper()
	account := entities.DefaultAccount()
	if mutate != nil {
		mutate(&account)
	}
	svc, err := NewSandboxService(context.Background(), NewMemoryRepositories(), account, logger.NewNopLogger())
	require.NoError(t, err)
	return svc
}

func requireFailure(t *testing.T, err error, failcode, parameter string) *dto.Failure {
	t.Helper()
	var failure *dto.Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, failcode, failure.Failcode)
	assert.Equal(t, parameter, failure.Parameter)
	return failure
}

func TestSendSMSChargesPerNumberAndPart(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	res, err := svc.SendSMS(ctx, dto.SendSMSRequest{
		Body:       "Hello",
		Originator: "ZenSend",
		Numbers:    "447796351234,15551234567",
	})

	require.NoError(t, err)
	assert.Len(t, res.TxGUID, 36)
	assert.Equal(t, strings.ToUpper(res.TxGUID), res.TxGUID)
	assert.Equal(t, 2, res.Numbers)
	assert.Equal(t, 1, res.SmsParts)
	assert.Equal(t, "gsm", res.Encoding)
	assert.InDelta(t, 2.47, res.CostInPence, 1e-9)
	assert.InDelta(t, 997.53, res.NewBalanceInPence, 1e-9)

	balance, err := svc.CheckBalance(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 997.53, balance.Balance, 1e-9)

	messages, err := svc.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, []string{"447796351234", "15551234567"}, messages[0].Numbers)
	assert.Equal(t, "alpha", messages[0].OriginatorType)
}

func TestSendSMSValidation(t *testing.T) {
	valid := dto.SendSMSRequest{Body: "Hello", Originator: "ZenSend", Numbers: "447796351234"}

	testCases := []struct {
		name      string
		mutate    func(*dto.SendSMSRequest)
		failcode  string
		parameter string
	}{
		{"empty body", func(r *dto.SendSMSRequest) { r.Body = "" }, dto.FailcodeIsEmpty, "BODY"},
		{"empty originator", func(r *dto.SendSMSRequest) { r.Originator = "" }, dto.FailcodeIsEmpty, "ORIGINATOR"},
		{"empty numbers", func(r *dto.SendSMSRequest) { r.Numbers = "" }, dto.FailcodeIsEmpty, "NUMBERS"},
		{"long alpha", func(r *dto.SendSMSRequest) { r.Originator = "ZenSendLimited" }, dto.FailcodeInvalidParameter, "ORIGINATOR"},
		{"msisdn letters", func(r *dto.SendSMSRequest) { r.OriginatorType = "msisdn" }, dto.FailcodeInvalidParameter, "ORIGINATOR"},
		{"originator type", func(r *dto.SendSMSRequest) { r.OriginatorType = "numeric" }, dto.FailcodeInvalidParameter, "ORIGINATOR_TYPE"},
		{"ttl", func(r *dto.SendSMSRequest) { r.TimeToLive = "soon" }, dto.FailcodeInvalidParameter, "TIMETOLIVE"},
		{"encoding", func(r *dto.SendSMSRequest) { r.Encoding = "GSM7" }, dto.FailcodeInvalidParameter, "ENCODING"},
		{"number format", func(r *dto.SendSMSRequest) { r.Numbers = "4477,+44" }, dto.FailcodeInvalidParameter, "NUMBERS"},
		{"unroutable", func(r *dto.SendSMSRequest) { r.Numbers = "33612345678" }, dto.FailcodeInvalidParameter, "NUMBERS"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t, nil)
			req := valid
			tc.mutate(&req)

			_, err := svc.SendSMS(context.Background(), req)

			requireFailure(t, err, tc.failcode, tc.parameter)
		})
	}
}

func TestSendSMSNotEnoughCredit(t *testing.T) {
	svc := newTestService(t, func(a *entities.Account) { a.BalanceInPence = 1 })

	_, err := svc.SendSMS(context.Background(), dto.SendSMSRequest{Body: "Hi", Originator: "ZenSend", Numbers: "447796351234"})

	failure := requireFailure(t, err, dto.FailcodeNotEnoughCredit, "")
	require.NotNil(t, failure.NewBalanceInPence)
	assert.Equal(t, 1.0, *failure.NewBalanceInPence)
	assert.Equal(t, 402, failure.HTTPStatus())
}

func TestSendSMSEncodingAndParts(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		encoding string
		expected string
		parts    int
	}{
		{"auto gsm", "Hello", "", "gsm", 1},
		{"auto ucs2", "Hello 😱", "", "ucs2", 1},
		{"forced ucs2", "Hello", "ucs2", "ucs2", 1},
		{"gsm boundary", strings.Repeat("a", 160), "gsm", "gsm", 1},
		{"gsm multipart", strings.Repeat("a", 161), "", "gsm", 2},
		{"gsm extension chars", strings.Repeat("€", 81), "", "gsm", 2},
		{"ucs2 multipart", strings.Repeat("ж", 71), "", "ucs2", 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t, nil)

			res, err := svc.SendSMS(context.Background(), dto.SendSMSRequest{
				Body: tc.body, Originator: "ZenSend", Numbers: "447796351234", Encoding: tc.encoding,
			})

			require.NoError(t, err)
			assert.Equal(t, tc.expected, res.Encoding)
			assert.Equal(t, tc.parts, res.SmsParts)
		})
	}
}

func TestCreateKeyword(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	req := dto.CreateKeywordRequest{Shortcode: "SC", Keyword: "KW", IsSticky: "false"}

	res, err := svc.CreateKeyword(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, dto.CreateKeywordResponse{CostInPence: 100, NewBalanceInPence: 900}, res)

	req.Keyword = "kw"
	_, err = svc.CreateKeyword(ctx, req)
	requireFailure(t, err, dto.FailcodeDuplicate, "KEYWORD")

	balance, err := svc.CheckBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 900.0, balance.Balance)
}

func TestCreateKeywordValidation(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.CreateKeyword(ctx, dto.CreateKeywordRequest{Keyword: "KW", IsSticky: "true"})
	requireFailure(t, err, dto.FailcodeIsEmpty, "SHORTCODE")

	_, err = svc.CreateKeyword(ctx, dto.CreateKeywordRequest{Shortcode: "SC", Keyword: "KW"})
	requireFailure(t, err, dto.FailcodeIsEmpty, "IS_STICKY")

	_, err = svc.CreateKeyword(ctx, dto.CreateKeywordRequest{Shortcode: "SC", Keyword: "KW", IsSticky: "yes"})
	requireFailure(t, err, dto.FailcodeInvalidParameter, "IS_STICKY")

	_, err = svc.CreateKeyword(ctx, dto.CreateKeywordRequest{Shortcode: "SC", Keyword: "TWO WORDS", IsSticky: "true"})
	requireFailure(t, err, dto.FailcodeInvalidParameter, "KEYWORD")
}

func TestGetPricesReturnsCopy(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	prices, err := svc.GetPrices(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"GB": 1.23, "US": 1.24}, prices.PricesInPence)

	prices.PricesInPence["GB"] = 0
	again, err := svc.GetPrices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.23, again.PricesInPence["GB"])
}

func TestLookupOperator(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	res, err := svc.LookupOperator(ctx, dto.OperatorLookupRequest{Number: "447796351234"})

	require.NoError(t, err)
	assert.Equal(t, dto.OperatorLookupResponse{
		MCC: "234", MNC: "10", Operator: "o2-uk", CostInPence: 2.5, NewBalanceInPence: 997.5,
	}, res)
}

func TestLookupOperatorDataMissingIsCharged(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.LookupOperator(context.Background(), dto.OperatorLookupRequest{Number: "441234567890"})

	failure := requireFailure(t, err, dto.FailcodeDataMissing, "")
	require.NotNil(t, failure.CostInPence)
	require.NotNil(t, failure.NewBalanceInPence)
	assert.Equal(t, 2.5, *failure.CostInPence)
	assert.Equal(t, 997.5, *failure.NewBalanceInPence)
	assert.Equal(t, 200, failure.HTTPStatus())
}

func TestLookupOperatorValidation(t *testing.T) {
	svc := newTestService(t, func(a *entities.Account) { a.BalanceInPence = 0 })
	ctx := context.Background()

	_, err := svc.LookupOperator(ctx, dto.OperatorLookupRequest{})
	requireFailure(t, err, dto.FailcodeIsEmpty, "NUMBER")

	_, err = svc.LookupOperator(ctx, dto.OperatorLookupRequest{Number: "+44"})
	requireFailure(t, err, dto.FailcodeInvalidParameter, "NUMBER")

	_, err = svc.LookupOperator(ctx, dto.OperatorLookupRequest{Number: "447796351234"})
	requireFailure(t, err, dto.FailcodeNotEnoughCredit, "")
}

func TestCreateSubAccount(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	res, err := svc.CreateSubAccount(ctx, dto.CreateSubAccountRequest{Name: "Team A"})

	require.NoError(t, err)
	assert.Equal(t, "Team A", res.Name)
	assert.Len(t, res.APIKey, 32)

	_, err = svc.CreateSubAccount(ctx, dto.CreateSubAccountRequest{Name: "team a"})
	requireFailure(t, err, dto.FailcodeDuplicate, "NAME")

	_, err = svc.CreateSubAccount(ctx, dto.CreateSubAccountRequest{Name: "  "})
	requireFailure(t, err, dto.FailcodeIsEmpty, "NAME")
}

func TestSmsParts(t *testing.T) {
	encoding, n := smsParts(strings.Repeat("a", 306), "")
	assert.Equal(t, "gsm", encoding)
	assert.Equal(t, 2, n)

	encoding, n = smsParts(strings.Repeat("a", 307), "")
	assert.Equal(t, "gsm", encoding)
	assert.Equal(t, 3, n)

	encoding, n = smsParts("😱", "gsm")
	assert.Equal(t, "gsm", encoding)
	assert.Equal(t, 1, n)
}

// accountRepo cancels the caller's context once the account has been read,
// and can be told to fail balance updates.
type accountRepo struct {
	repository.Repository[entities.Account]
	cancel      context.CancelFunc
	failUpdates bool
}

func (r *accountRepo) FindByID(ctx context.Context, collectionName string, id string) (entities.Account, error) {
	account, err := r.Repository.FindByID(ctx, collectionName, id)
	if r.cancel != nil {
		r.cancel()
	}
	return account, err
}

func (r *accountRepo) Update(ctx context.Context, collectionName string, id string, entity entities.Account) (entities.Account, error) {
	if r.failUpdates {
		return entities.Account{}, errors.New("balance store unavailable")
	}
	return r.Repository.Update(ctx, collectionName, id, entity)
}

func newServiceWithAccounts(t *testing.T, accounts *accountRepo) *SandboxService {
	t.Helper()
	repos := NewMemoryRepositories()
	accounts.Repository = repos.Accounts
	repos.Accounts = accounts
	svc, err := NewSandboxService(context.Background(), repos, entities.DefaultAccount(), logger.NewNopLogger())
	require.NoError(t, err)
	return svc
}

func TestWritesSurviveCancellationAfterChecks(t *testing.T) {
	accounts := &accountRepo{}
	svc := newServiceWithAccounts(t, accounts)

	ctx, cancel := context.WithCancel(context.Background())
	accounts.cancel = cancel
	_, err := svc.CreateKeyword(ctx, dto.CreateKeywordRequest{Shortcode: "SC", Keyword: "KW", IsSticky: "true"})
	require.NoError(t, err)

	ctx, cancel = context.WithCancel(context.Background())
	accounts.cancel = cancel
	_, err = svc.SendSMS(ctx, dto.SendSMSRequest{Body: "Hi", Originator: "ZenSend", Numbers: "447796351234"})
	require.NoError(t, err)

	accounts.cancel = nil
	balance, err := svc.CheckBalance(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 898.77, balance.Balance, 1e-9)

	messages, err := svc.ListMessages(context.Background())
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestFailedDebitRollsBackRecords(t *testing.T) {
	accounts := &accountRepo{}
	svc := newServiceWithAccounts(t, accounts)
	ctx := context.Background()
	accounts.failUpdates = true

	_, err := svc.SendSMS(ctx, dto.SendSMSRequest{Body: "Hi", Originator: "ZenSend", Numbers: "447796351234"})
	require.Error(t, err)
	messages, err := svc.ListMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, messages)

	keyword := dto.CreateKeywordRequest{Shortcode: "SC", Keyword: "KW", IsSticky: "false"}
	_, err = svc.CreateKeyword(ctx, keyword)
	require.Error(t, err)

	accounts.failUpdates = false
	res, err := svc.CreateKeyword(ctx, keyword)
	require.NoError(t, err)
	assert.Equal(t, 900.0, res.NewBalanceInPence)
}
