package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	metaContextKey = "studymate.response_meta"

	metaCacheHit         = "cache_hit"
	metaTimetableVersion = "timetable_version"
	metaElapsed          = "processing_time_ms"
)

// WithResponseMeta gives each request a meta map for the envelope and
// stamps processing time once the handler returns.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		meta := map[string]interface{}{}
		c.Set(metaContextKey, meta)
		c.Next()
		if _, ok := meta[metaElapsed]; !ok {
			meta[metaElapsed] = time.Since(start).Milliseconds()
		}
	}
}

// SetCacheHit reports whether the timetable came from redis.
func SetCacheHit(c *gin.Context, hit bool) {
	metaFor(c)[metaCacheHit] = hit
}

// SetTimetableVersion exposes the version a response was built from, so
// clients can tell when a queued export will render a newer week.
func SetTimetableVersion(c *gin.Context, version int) {
	if version > 0 {
		metaFor(c)[metaTimetableVersion] = version
	}
}

// ExtractMeta returns the meta map, or nil when none was recorded.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	meta, _ := c.Value(metaContextKey).(map[string]interface{})
	return meta
}

func metaFor(c *gin.Context) map[string]interface{} {
	if meta := ExtractMeta(c); meta != nil {
		return meta
	}
	meta := map[string]interface{}{}
	if c != nil {
		c.Set(metaContextKey, meta)
	}
	return meta
}
