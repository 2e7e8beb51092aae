package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// OriginGuard rejects requests whose Origin (or, failing that, Referer)
// is not in allowed. An empty allow-list lets every request through.
func OriginGuard(allowed []string) echo.MiddlewareFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		set[origin] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(set) > 0 && !originAllowed(c.Request(), set) {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}

func originAllowed(r *http.Request, allowed map[string]struct{}) bool {
	if origin := r.Header.Get(echo.HeaderOrigin); origin != "" {
		if _, ok := allowed[origin]; ok {
			return true
		}
	}

	referer := r.Header.Get("Referer")
	if referer == "" {
		return false
	}
	origin, ok := refererOrigin(referer)
	if !ok {
		return false
	}
	_, ok = allowed[origin]
	return ok
}

// refererOrigin reduces a Referer URL to scheme://host[:port]
func refererOrigin(referer string) (string, bool) {
	u, err := url.Parse(referer)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	return u.Scheme + "://" + u.Host, true
}
