package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"dailyshop-backend/pkg/utils"
)

// PanicRecovery turns a handler panic into a logged 500 instead of killing
// the connection.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC RECOVERED: %v\n%s", err, debug.Stack())
				utils.Error(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
