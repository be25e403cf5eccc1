/**
 * @description
 * Reverse proxy plumbing for the gateway-service. Each downstream service
 * gets one proxy; paths and query strings pass through unchanged, and the
 * verified token subject is forwarded as X-User-ID.
 */
package gateway

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/d-sar/poc/internal/gateway/middleware"
)

// NewProxy builds a reverse proxy for one downstream service base URL.
func NewProxy(target string) (http.Handler, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parsing proxy target %q: %w", target, err)
	}

	proxy := httputil.NewSingleHostReverseProxy(u)

	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Host = u.Host
		if subject, ok := middleware.SubjectFromContext(r.Context()); ok {
			r.Header.Set("X-User-ID", subject)
		}
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		slog.Warn("proxy request failed", "target", u.Host, "path", r.URL.Path, "error", err)
		http.Error(w, "upstream service unavailable", http.StatusBadGateway)
	}

	return proxy, nil
}
