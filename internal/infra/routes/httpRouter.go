package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/zensend/zensend-go/internal/infra/handlers"
	"github.com/zensend/zensend-go/internal/infra/logger"
	"github.com/zensend/zensend-go/internal/middleware"
)

type Routes struct {
	Mux             *mux.Router
	SandboxHandlers *handlers.SandboxHandlers
	Logger          *logger.Logger
	APIKey          string
}

func NewRoutes(mux *mux.Router, sandboxHandlers *handlers.SandboxHandlers, logger *logger.Logger, apiKey string) *Routes {
	return &Routes{Mux: mux, SandboxHandlers: sandboxHandlers, Logger: logger, APIKey: apiKey}
}

func (r *Routes) Init() {
	v3 := r.Mux.PathPrefix("/v3").Subrouter()
	v3.Use(middleware.APIKeyMiddleware(r.Logger, r.APIKey))

	v3.HandleFunc("/sendsms", r.SandboxHandlers.SendSMS).Methods(http.MethodPost)
	v3.HandleFunc("/keywords", r.SandboxHandlers.CreateKeyword).Methods(http.MethodPost)
	v3.HandleFunc("/checkbalance", r.SandboxHandlers.CheckBalance).Methods(http.MethodGet)
	v3.HandleFunc("/prices", r.SandboxHandlers.GetPrices).Methods(http.MethodGet)
	v3.HandleFunc("/operator_lookup", r.SandboxHandlers.OperatorLookup).Methods(http.MethodGet)
	v3.HandleFunc("/sub_accounts", r.SandboxHandlers.CreateSubAccount).Methods(http.MethodPost)

	r.Mux.HandleFunc("/admin/messages", r.SandboxHandlers.ListMessages).Methods(http.MethodGet)

	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)
}
