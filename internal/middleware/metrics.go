package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"accounts-api/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

// Metrics creates middleware that records a counter and duration histogram
// per request. Ids are stripped from the route label to keep cardinality
// bounded.
func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(recorder, r)

			collector.RecordRequest(
				r.Method,
				routeLabel(r.URL.Path),
				strconv.Itoa(recorder.statusCode),
				time.Since(start).Seconds(),
			)
		})
	}
}

// routeLabel collapses path segments that parse as ids into a placeholder
func routeLabel(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if looksLikeID(segment) {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

func looksLikeID(segment string) bool {
	// uuid v4 string form: 36 chars with hyphens at fixed positions
	return len(segment) == 36 && strings.Count(segment, "-") == 4
}
