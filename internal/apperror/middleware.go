package apperror

import (
	"errors"
	"net/http"
)

type handler func(w http.ResponseWriter, r *http.Request) error

func Middleware(h handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		err := h(w, r)
		if err == nil {
			return
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			switch {
			case errors.Is(err, ErrNotFound):
				w.WriteHeader(http.StatusNotFound)
			case errors.Is(err, ErrUnauthorized):
				w.WriteHeader(http.StatusUnauthorized)
			case errors.Is(err, ErrForbidden):
				w.WriteHeader(http.StatusForbidden)
			default:
				w.WriteHeader(http.StatusBadRequest)
			}

			w.Write(appErr.Marshal())

			return
		}

		w.WriteHeader(http.StatusInternalServerError)
		w.Write(internalError().Marshal())
	}
}
