package middlewares

import (
	"errors"
	"net/http"

	"github.com/craftandcart/storefront/internal/handlerutils"
	"github.com/craftandcart/storefront/internal/servererrors"
	"go.uber.org/zap"
)

// ErrorHandler adapts an error-returning APIHandler into an http.HandlerFunc,
// centralizing error logging and the error envelope. Any error that is not a
// ServerError collapses to a 500 with a generic message.
func (mw *middleware) ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		var serverError *servererrors.ServerError
		if errors.As(err, &serverError) {
			mw.logger.Warn("request failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", serverError.StatusCode),
				zap.Error(err),
			)

			handlerutils.WriteErrorJSON(
				w,
				serverError.StatusCode,
				serverError.Error(),
				serverError.Errors,
			)
			return
		}

		mw.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)

		handlerutils.WriteErrorJSON(
			w,
			http.StatusInternalServerError,
			"something went wrong",
			nil,
		)
	}
}
