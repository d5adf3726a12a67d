package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/api/shared"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/budget"
)

// ClientIDHeader names the caller for rate limiting when it is set by a
// trusted proxy. Its prefix selects the client's tier.
const ClientIDHeader = "X-Client-ID"

// Limiter decides whether a client may make another request.
type Limiter interface {
	Check(client string, now time.Time) budget.Result
}

// RateLimiter rejects requests over the client's limits with 429 Too Many
// Requests and a Retry-After header. Clients are keyed by remote address;
// ClientIDHeader is honored only when trustClientID is set. now may be nil.
func RateLimiter(limiter Limiter, trustClientID bool, now func() time.Time) func(http.Handler) http.Handler {
	if now == nil {
		now = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := ClientID(r, trustClientID)
			res := limiter.Check(client, now())
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

			if !res.Allowed {
				secs := int(math.Ceil(res.RetryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				slog.WarnContext(r.Context(), "rate limit exceeded",
					slog.String("client", client),
					slog.String("reason", res.Reason))
				shared.RespondWithError(w, r, http.StatusTooManyRequests, "Rate limit exceeded: "+res.Reason)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientID identifies the caller of r by its remote address, or by
// ClientIDHeader when trustHeader is set and the header is present.
func ClientID(r *http.Request, trustHeader bool) string {
	if id := r.Header.Get(ClientIDHeader); trustHeader && id != "" {
		return id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
