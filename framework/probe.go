package framework

import (
	"net/http"
	"strconv"
	"time"
)

// RateLimitProbe describes how to look for a request-rate ceiling.
type RateLimitProbe struct {
	// MaxAttempts bounds the number of requests.
	MaxAttempts int
	// Interval is the pause between consecutive requests.
	Interval time.Duration
	// LimitStatus is the status that signals throttling; defaults to 429.
	LimitStatus int
	// Progress, if set, is called after each request with the number sent so far.
	Progress func(sent int)
}

// ProbeResult is the outcome of a rate-limit probe. Not being limited within the bound is
// not proof that there is no limit.
type ProbeResult struct {
	Limited    bool
	Attempts   int
	RetryAfter time.Duration
	// AdvertisedLimit is the last X-RateLimit-Limit header value seen, or 0.
	AdvertisedLimit int
	Statuses        map[string]int
}

// ProbeRateLimit sends requests built by request until one of them is throttled or the
// bound is reached.
func (c *ServiceClient) ProbeRateLimit(probe RateLimitProbe, request func(i int) RequestParams, logger Logger) ProbeResult {
	limitStatus := probe.LimitStatus
	if limitStatus == 0 {
		limitStatus = http.StatusTooManyRequests
	}
	result := ProbeResult{Statuses: make(map[string]int)}
	for i := 0; i < probe.MaxAttempts; i++ {
		resp := c.Do(request(i), logger)
		result.Attempts++
		result.Statuses[resp.StatusString()]++
		if limit, err := strconv.Atoi(resp.Header.Get("X-RateLimit-Limit")); err == nil {
			result.AdvertisedLimit = limit
		}
		if probe.Progress != nil {
			probe.Progress(result.Attempts)
		}
		if resp.StatusIn(limitStatus) {
			result.Limited = true
			if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
				result.RetryAfter = time.Duration(secs) * time.Second
			}
			return result
		}
		if i < probe.MaxAttempts-1 {
			time.Sleep(probe.Interval)
		}
	}
	return result
}
