package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/zensend/zensend-go/internal/domain/dto"
	Iservices "github.com/zensend/zensend-go/internal/domain/interfaces/services"
	"github.com/zensend/zensend-go/internal/infra/logger"
	"github.com/zensend/zensend-go/zensend"
)

type SandboxHandlers struct {
	Logger  *logger.Logger
	Service Iservices.ISandboxService
}

func NewSandboxHandlers(logger *logger.Logger, service Iservices.ISandboxService) *SandboxHandlers {
	return &SandboxHandlers{Logger: logger, Service: service}
}

// SendSMS handles POST /v3/sendsms.
//
// Form fields: BODY, ORIGINATOR, NUMBERS (comma separated), ORIGINATOR_TYPE,
// and the optional TIMETOLIVE and ENCODING.
func (h *SandboxHandlers) SendSMS(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	res, err := h.Service.SendSMS(r.Context(), dto.SendSMSRequest{
		Body:           r.PostFormValue(zensend.ParamBody),
		Originator:     r.PostFormValue(zensend.ParamOriginator),
		Numbers:        r.PostFormValue(zensend.ParamNumbers),
		OriginatorType: r.PostFormValue(zensend.ParamOriginatorType),
		TimeToLive:     r.PostFormValue(zensend.ParamTimeToLive),
		Encoding:       r.PostFormValue(zensend.ParamEncoding),
	})
	h.respond(w, res, err)
}

// CreateKeyword handles POST /v3/keywords.
func (h *SandboxHandlers) CreateKeyword(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	res, err := h.Service.CreateKeyword(r.Context(), dto.CreateKeywordRequest{
		Shortcode: r.PostFormValue(zensend.ParamShortcode),
		Keyword:   r.PostFormValue(zensend.ParamKeyword),
		IsSticky:  r.PostFormValue(zensend.ParamIsSticky),
		MoURL:     r.PostFormValue(zensend.ParamMoURL),
	})
	h.respond(w, res, err)
}

func (h *SandboxHandlers) CheckBalance(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.CheckBalance(r.Context())
	h.respond(w, res, err)
}

func (h *SandboxHandlers) GetPrices(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.GetPrices(r.Context())
	h.respond(w, res, err)
}

// OperatorLookup handles GET /v3/operator_lookup?NUMBER=...
func (h *SandboxHandlers) OperatorLookup(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.LookupOperator(r.Context(), dto.OperatorLookupRequest{
		Number: r.URL.Query().Get(zensend.ParamNumber),
	})
	h.respond(w, res, err)
}

func (h *SandboxHandlers) CreateSubAccount(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	res, err := h.Service.CreateSubAccount(r.Context(), dto.CreateSubAccountRequest{
		Name: r.PostFormValue(zensend.ParamName),
	})
	h.respond(w, res, err)
}

// ListMessages returns every message the sandbox accepted, oldest first.
// It is not part of the /v3 API and uses a plain JSON array.
func (h *SandboxHandlers) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.Service.ListMessages(r.Context())
	if err != nil {
		h.Logger.Error("Failed to list sandbox messages", logrus.Fields{"error": err.Error()})
		http.Error(w, "failed to list messages", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

func (h *SandboxHandlers) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		h.Logger.Warn("Invalid form body", logrus.Fields{"path": r.URL.Path, "error": err.Error()})
		WriteFailure(w, &dto.Failure{Failcode: dto.FailcodeGenericError})
		return false
	}
	return true
}

func (h *SandboxHandlers) respond(w http.ResponseWriter, success any, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, dto.Envelope{Success: success})
		return
	}

	var failure *dto.Failure
	if errors.As(err, &failure) {
		WriteFailure(w, failure)
		return
	}

	h.Logger.Error("Sandbox request failed", logrus.Fields{"error": err.Error()})
	WriteFailure(w, &dto.Failure{Failcode: dto.FailcodeGenericError, Status: http.StatusInternalServerError})
}

// WriteFailure writes failure inside the API envelope with its HTTP status.
func WriteFailure(w http.ResponseWriter, failure *dto.Failure) {
	writeJSON(w, failure.HTTPStatus(), dto.Envelope{Failure: failure})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
