package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zensend/zensend-go/internal/domain/dto"
	"github.com/zensend/zensend-go/internal/domain/entities"
	"github.com/zensend/zensend-go/internal/domain/interfaces/repository"
	"github.com/zensend/zensend-go/internal/infra/logger"
	memory "github.com/zensend/zensend-go/internal/infra/repository"
)

const (
	primaryAccountID   = "primary"
	maxAlphaOriginator = 11
)

type SandboxRepositories struct {
	Accounts    repository.Repository[entities.Account]
	Messages    repository.Repository[entities.SentMessage]
	Keywords    repository.Repository[entities.Keyword]
	SubAccounts repository.Repository[entities.SubAccount]
}

// NewMemoryRepositories keeps all sandbox state in process memory.
func NewMemoryRepositories() SandboxRepositories {
	return SandboxRepositories{
		Accounts:    memory.NewMemoryRepository[entities.Account](),
		Messages:    memory.NewMemoryRepository[entities.SentMessage](),
		Keywords:    memory.NewMemoryRepository[entities.Keyword](),
		SubAccounts: memory.NewMemoryRepository[entities.SubAccount](),
	}
}

// SandboxService holds the account state behind the sandbox /v3 endpoints.
type SandboxService struct {
	Repos  SandboxRepositories
	Logger *logger.Logger

	// mu serialises every balance read-modify-write.
	mu  sync.Mutex
	now func() time.Time
}

// NewSandboxService stores account as the billable account.
func NewSandboxService(ctx context.Context, repos SandboxRepositories, account entities.Account, logger *logger.Logger) (*SandboxService, error) {
	if _, err := repos.Accounts.Update(ctx, repository.ACCOUNT_COLLECTION, primaryAccountID, account); err != nil {
		return nil, fmt.Errorf("failed to seed sandbox account: %w", err)
	}
	return &SandboxService{Repos: repos, Logger: logger, now: time.Now}, nil
}

func isEmpty(parameter string) *dto.Failure {
	return &dto.Failure{Failcode: dto.FailcodeIsEmpty, Parameter: parameter}
}

func invalid(parameter string) *dto.Failure {
	return &dto.Failure{Failcode: dto.FailcodeInvalidParameter, Parameter: parameter}
}

func notEnoughCredit(account entities.Account) *dto.Failure {
	balance := account.BalanceInPence
	return &dto.Failure{
		Failcode:          dto.FailcodeNotEnoughCredit,
		NewBalanceInPence: &balance,
		Status:            http.StatusPaymentRequired,
	}
}

func roundPence(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// longestPrefix returns the value whose key is the longest prefix of number.
func longestPrefix[T any](table map[string]T, number string) (T, bool) {
	var (
		best    T
		bestLen = -1
	)
	for prefix, value := range table {
		if len(prefix) > bestLen && strings.HasPrefix(number, prefix) {
			best, bestLen = value, len(prefix)
		}
	}
	return best, bestLen >= 0
}

func (s *SandboxService) account(ctx context.Context) (entities.Account, error) {
	return s.Repos.Accounts.FindByID(ctx, repository.ACCOUNT_COLLECTION, primaryAccountID)
}

func (s *SandboxService) debit(ctx context.Context, account entities.Account, cost float64) (entities.Account, error) {
	account.BalanceInPence = roundPence(account.BalanceInPence - cost)
	return s.Repos.Accounts.Update(ctx, repository.ACCOUNT_COLLECTION, primaryAccountID, account)
}

// rollback removes a record whose paired debit failed.
func (s *SandboxService) rollback(ctx context.Context, del func(context.Context, string, string) error, collection, id string) {
	if err := del(ctx, collection, id); err != nil {
		s.Logger.Error("Failed to roll back sandbox record", logrus.Fields{
			"collection": collection,
			"id":         id,
			"error":      err.Error(),
		})
	}
}

func (s *SandboxService) SendSMS(ctx context.Context, req dto.SendSMSRequest) (dto.SmsResponse, error) {
	if req.Body == "" {
		return dto.SmsResponse{}, isEmpty("BODY")
	}
	if req.Originator == "" {
		return dto.SmsResponse{}, isEmpty("ORIGINATOR")
	}
	if req.Numbers == "" {
		return dto.SmsResponse{}, isEmpty("NUMBERS")
	}

	originatorType := strings.ToLower(req.OriginatorType)
	switch originatorType {
	case "", "alpha":
		originatorType = "alpha"
		if len([]rune(req.Originator)) > maxAlphaOriginator {
			return dto.SmsResponse{}, invalid("ORIGINATOR")
		}
	case "msisdn":
		if !isDigits(req.Originator) {
			return dto.SmsResponse{}, invalid("ORIGINATOR")
		}
	default:
		return dto.SmsResponse{}, invalid("ORIGINATOR_TYPE")
	}

	var ttl *int
	if req.TimeToLive != "" {
		minutes, err := strconv.Atoi(req.TimeToLive)
		if err != nil || minutes <= 0 {
			return dto.SmsResponse{}, invalid("TIMETOLIVE")
		}
		ttl = &minutes
	}

	encoding := strings.ToLower(req.Encoding)
	if encoding != "" && encoding != "gsm" && encoding != "ucs2" {
		return dto.SmsResponse{}, invalid("ENCODING")
	}
	encoding, partCount := smsParts(req.Body, encoding)

	numbers := strings.Split(req.Numbers, ",")
	for i, number := range numbers {
		numbers[i] = strings.TrimSpace(number)
		if !isDigits(numbers[i]) {
			return dto.SmsResponse{}, invalid("NUMBERS")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.account(ctx)
	if err != nil {
		return dto.SmsResponse{}, err
	}

	var cost float64
	for _, number := range numbers {
		country, ok := longestPrefix(account.CountryPrefixes, number)
		if !ok {
			return dto.SmsResponse{}, invalid("NUMBERS")
		}
		price, ok := account.PricesInPence[country]
		if !ok {
			return dto.SmsResponse{}, invalid("NUMBERS")
		}
		cost += price * float64(partCount)
	}
	cost = roundPence(cost)

	if cost > account.BalanceInPence {
		return dto.SmsResponse{}, notEnoughCredit(account)
	}

	// From here on both writes must land together.
	writeCtx := context.WithoutCancel(ctx)

	msg := entities.SentMessage{
		TxGUID:         strings.ToUpper(uuid.NewString()),
		Originator:     req.Originator,
		OriginatorType: originatorType,
		Body:           req.Body,
		Numbers:        numbers,
		Encoding:       encoding,
		SmsParts:       partCount,
		TimeToLive:     ttl,
		CostInPence:    cost,
		CreatedAt:      s.now(),
	}
	if _, err := s.Repos.Messages.Create(writeCtx, repository.MESSAGE_COLLECTION, msg.TxGUID, msg); err != nil {
		return dto.SmsResponse{}, err
	}

	account, err = s.debit(writeCtx, account, cost)
	if err != nil {
		s.rollback(writeCtx, s.Repos.Messages.Delete, repository.MESSAGE_COLLECTION, msg.TxGUID)
		return dto.SmsResponse{}, err
	}

	s.Logger.Info("Sandbox SMS accepted", logrus.Fields{
		"txguid":   msg.TxGUID,
		"numbers":  len(numbers),
		"smsparts": partCount,
		"encoding": encoding,
		"cost":     cost,
	})

	return dto.SmsResponse{
		TxGUID:            msg.TxGUID,
		Numbers:           len(numbers),
		SmsParts:          partCount,
		Encoding:          encoding,
		CostInPence:       cost,
		NewBalanceInPence: account.BalanceInPence,
	}, nil
}

func (s *SandboxService) CreateKeyword(ctx context.Context, req dto.CreateKeywordRequest) (dto.CreateKeywordResponse, error) {
	if req.Shortcode == "" {
		return dto.CreateKeywordResponse{}, isEmpty("SHORTCODE")
	}
	if req.Keyword == "" {
		return dto.CreateKeywordResponse{}, isEmpty("KEYWORD")
	}
	if req.IsSticky == "" {
		return dto.CreateKeywordResponse{}, isEmpty("IS_STICKY")
	}
	if req.IsSticky != "true" && req.IsSticky != "false" {
		return dto.CreateKeywordResponse{}, invalid("IS_STICKY")
	}
	if strings.IndexFunc(req.Keyword, unicode.IsSpace) >= 0 {
		return dto.CreateKeywordResponse{}, invalid("KEYWORD")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.account(ctx)
	if err != nil {
		return dto.CreateKeywordResponse{}, err
	}
	if account.KeywordCostInPence > account.BalanceInPence {
		return dto.CreateKeywordResponse{}, notEnoughCredit(account)
	}

	keyword := entities.Keyword{
		Shortcode: req.Shortcode,
		Keyword:   req.Keyword,
		IsSticky:  req.IsSticky == "true",
		MoURL:     req.MoURL,
		CreatedAt: s.now(),
	}
	writeCtx := context.WithoutCancel(ctx)

	id := req.Shortcode + ":" + strings.ToLower(req.Keyword)
	if _, err := s.Repos.Keywords.Create(writeCtx, repository.KEYWORD_COLLECTION, id, keyword); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return dto.CreateKeywordResponse{}, &dto.Failure{Failcode: dto.FailcodeDuplicate, Parameter: "KEYWORD"}
		}
		return dto.CreateKeywordResponse{}, err
	}

	account, err = s.debit(writeCtx, account, account.KeywordCostInPence)
	if err != nil {
		s.rollback(writeCtx, s.Repos.Keywords.Delete, repository.KEYWORD_COLLECTION, id)
		return dto.CreateKeywordResponse{}, err
	}

	s.Logger.Info("Sandbox keyword registered", logrus.Fields{"shortcode": req.Shortcode, "keyword": req.Keyword})

	return dto.CreateKeywordResponse{
		CostInPence:       account.KeywordCostInPence,
		NewBalanceInPence: account.BalanceInPence,
	}, nil
}

func (s *SandboxService) CheckBalance(ctx context.Context) (dto.BalanceResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.account(ctx)
	if err != nil {
		return dto.BalanceResponse{}, err
	}
	return dto.BalanceResponse{Balance: account.BalanceInPence}, nil
}

func (s *SandboxService) GetPrices(ctx context.Context) (dto.PricesResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.account(ctx)
	if err != nil {
		return dto.PricesResponse{}, err
	}

	prices := make(map[string]float64, len(account.PricesInPence))
	for country, price := range account.PricesInPence {
		prices[country] = price
	}
	return dto.PricesResponse{PricesInPence: prices}, nil
}

// LookupOperator charges for the lookup even when no operator is known for
// the number; the DATA_MISSING failure then echoes the cost and new balance.
func (s *SandboxService) LookupOperator(ctx context.Context, req dto.OperatorLookupRequest) (dto.OperatorLookupResponse, error) {
	if req.Number == "" {
		return dto.OperatorLookupResponse{}, isEmpty("NUMBER")
	}
	if !isDigits(req.Number) {
		return dto.OperatorLookupResponse{}, invalid("NUMBER")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.account(ctx)
	if err != nil {
		return dto.OperatorLookupResponse{}, err
	}
	if account.LookupCostInPence > account.BalanceInPence {
		return dto.OperatorLookupResponse{}, notEnoughCredit(account)
	}

	account, err = s.debit(context.WithoutCancel(ctx), account, account.LookupCostInPence)
	if err != nil {
		return dto.OperatorLookupResponse{}, err
	}

	cost, balance := account.LookupCostInPence, account.BalanceInPence
	operator, ok := longestPrefix(account.Operators, req.Number)
	if !ok {
		return dto.OperatorLookupResponse{}, &dto.Failure{
			Failcode:          dto.FailcodeDataMissing,
			CostInPence:       &cost,
			NewBalanceInPence: &balance,
			Status:            http.StatusOK,
		}
	}

	return dto.OperatorLookupResponse{
		MCC:               operator.MCC,
		MNC:               operator.MNC,
		Operator:          operator.Name,
		CostInPence:       cost,
		NewBalanceInPence: balance,
	}, nil
}

func (s *SandboxService) CreateSubAccount(ctx context.Context, req dto.CreateSubAccountRequest) (dto.SubAccountResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return dto.SubAccountResponse{}, isEmpty("NAME")
	}

	sub := entities.SubAccount{
		Name:      name,
		APIKey:    strings.ReplaceAll(uuid.NewString(), "-", ""),
		CreatedAt: s.now(),
	}
	if _, err := s.Repos.SubAccounts.Create(ctx, repository.SUB_ACCOUNT_COLLECTION, strings.ToLower(name), sub); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return dto.SubAccountResponse{}, &dto.Failure{Failcode: dto.FailcodeDuplicate, Parameter: "NAME"}
		}
		return dto.SubAccountResponse{}, err
	}

	s.Logger.Info("Sandbox sub-account created", logrus.Fields{"name": name})

	return dto.SubAccountResponse{Name: sub.Name, APIKey: sub.APIKey}, nil
}

func (s *SandboxService) ListMessages(ctx context.Context) ([]entities.SentMessage, error) {
	return s.Repos.Messages.FindAll(ctx, repository.MESSAGE_COLLECTION)
}
