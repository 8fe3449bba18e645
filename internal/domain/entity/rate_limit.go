package entity

import "time"

// RateLimit is a sliding-window request budget
type RateLimit struct {
	Name      string
	Requests  int
	Window    time.Duration
	KeyPrefix string
}

// Key builds the limiter key for a caller identity
func (r RateLimit) Key(identity string) string {
	prefix := r.KeyPrefix
	if prefix == "" {
		prefix = r.Name
	}
	if identity == "" {
		identity = "anonymous"
	}
	return prefix + ":" + identity
}

// Named rate limits applied to the HTTP routes
var (
	RateLimitAccount  = RateLimit{Name: "account", Requests: 5, Window: 5 * time.Second}
	RateLimitGenerate = RateLimit{Name: "generate", Requests: 10, Window: 10 * time.Second}
	RateLimitHistory  = RateLimit{Name: "history", Requests: 20, Window: 10 * time.Second}
	RateLimitUpload   = RateLimit{Name: "upload", Requests: 5, Window: 60 * time.Second}
	RateLimitDownload = RateLimit{Name: "download", Requests: 30, Window: 60 * time.Second}
	RateLimitGeneral  = RateLimit{Name: "general", Requests: 30, Window: 10 * time.Second, KeyPrefix: "api"}
	RateLimitTask     = RateLimit{Name: "task", Requests: 15, Window: 5 * time.Second, KeyPrefix: "task:query"}
	RateLimitActivity = RateLimit{Name: "activity", Requests: 5, Window: 5 * time.Second, KeyPrefix: "activity:app"}
)
