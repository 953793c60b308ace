package middleware

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/rahul4469/phisher-ai/context"
	"github.com/rahul4469/phisher-ai/internal/models"
	"go.uber.org/zap"
)

// RecoverJSON turns a panic into a 500 error envelope. Used on JSON routes so
// clients always receive {"error": ...}.
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			context.Logger(r.Context()).Error("panic while handling request", zap.Any("panic", rvr), zap.Stack("stack"))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, models.ErrorEnvelope{Error: models.ErrInternal.Error()})
		}()

		next.ServeHTTP(w, r)
	})
}
