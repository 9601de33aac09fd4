package middleware

import (
	"net/http"
	"runtime/debug"

	"borewell-booking/pkg/response"

	"github.com/sirupsen/logrus"
)

type RecoveryMiddleware struct {
	log *logrus.Logger
}

func NewRecoveryMiddleware(log *logrus.Logger) *RecoveryMiddleware {
	return &RecoveryMiddleware{log: log}
}

func (m *RecoveryMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.log.WithField("path", req.URL.Path).Errorf("Panic while serving request: %v\n%s", rec, debug.Stack())
				response.Error(w, http.StatusInternalServerError, "Something went wrong!", nil)
			}
		}()

		next.ServeHTTP(w, req)
	})
}
