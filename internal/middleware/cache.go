package middleware

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/suratpier/nightboat/internal/config"
)

// NewDashboardCache returns a middleware that serves GET responses from
// Redis for a short TTL.  It is applied only to the dashboard route, whose
// aggregation scans both ledgers on every call; a few seconds of staleness
// is acceptable there.  Disabled or unreachable Redis makes it a
// pass-through.
func NewDashboardCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			ctx := c.Request().Context()
			key := cfg.Prefix + ":" + c.Path()

			if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, body)
			}

			// Capture the response body while letting the handler write
			// through as usual.
			rec := &bodyRecorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec

			if err := next(c); err != nil {
				return err
			}
			if c.Response().Status == http.StatusOK && rec.buf.Len() > 0 {
				rdb.Set(ctx, key, rec.buf.Bytes(), cfg.TTL)
			}
			return nil
		}
	}
}

// bodyRecorder duplicates everything written to the response into a buffer.
type bodyRecorder struct {
	http.ResponseWriter
	buf bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}
