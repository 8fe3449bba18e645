package core

import "time"

// MetricsRecorder collects operational metrics
type MetricsRecorder interface {
	// RecordHTTPRequest observes one served HTTP request
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
	// RecordGeneration observes one generation attempt by kind and outcome
	RecordGeneration(kind, outcome string, duration time.Duration)
	// RecordCreditCharge counts credit deducted from accounts
	RecordCreditCharge(amount int64)
	// RecordRateLimitDenied counts requests rejected by a rate limit rule
	RecordRateLimitDenied(rule string)
}
