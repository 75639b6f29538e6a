package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/zensend/zensend-go/internal/domain/dto"
	"github.com/zensend/zensend-go/internal/infra/handlers"
	"github.com/zensend/zensend-go/internal/infra/logger"
	"github.com/zensend/zensend-go/zensend"
)

// APIKeyMiddleware rejects requests whose X-API-KEY header differs from
// expected with a NOT_AUTHORIZED failure envelope.
func APIKeyMiddleware(log *logger.Logger, expected string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(zensend.APIKeyHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
				log.Warn("Rejected request with invalid API key", logrus.Fields{"path": r.URL.Path, "remote": r.RemoteAddr})
				handlers.WriteFailure(w, &dto.Failure{Failcode: dto.FailcodeNotAuthorized, Status: http.StatusForbidden})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
