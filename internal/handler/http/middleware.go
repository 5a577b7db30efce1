package http

import (
	"net/http"
	"strings"

	"github.com/utafrali/reviewcarousel/pkg/httputil"
)

// RequireMultipart rejects POST bodies that are not multipart/form-data.
func RequireMultipart(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			ct := r.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, "multipart/form-data") {
				httputil.WriteErrorCode(w, r, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Content-Type must be multipart/form-data")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
