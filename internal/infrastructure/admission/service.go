// Package admission implements the request-admission backend: bot and
// shield classification plus a Redis-backed sliding-window rate limiter.
// It satisfies ports.AdmissionService without depending on any vendor.
package admission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/acquisitions/identity-api/internal/core/domain"
)

// botSignatures are User-Agent substrings (lowercase) that mark automated
// clients. Matching is deny-first: there is no allow-list for "good" bots.
var botSignatures = []string{
	"bot",
	"crawler",
	"spider",
	"scrapy",
	"python-requests",
	"wget",
	"headlesschrome",
	"phantomjs",
}

// shieldSignatures are path/query substrings (lowercase) associated with
// scanners and injection probes.
var shieldSignatures = []string{
	"../",
	"..%2f",
	"%00",
	"<script",
	"%3cscript",
	"union select",
	"union%20select",
	"etc/passwd",
	"cmd.exe",
}

// Service makes allow/deny decisions per request. Window counters live
// entirely in Redis; the service itself holds no mutable state.
type Service struct {
	rdb *redis.Client
	now func() time.Time
}

func NewService(rdb *redis.Client) *Service {
	return &Service{rdb: rdb, now: time.Now}
}

// Protect classifies the request and applies the sliding-window rule.
// Deny reasons are evaluated in priority order: bot, shield, rate limit.
// Only counter failures return an error; a deny is a normal decision.
func (s *Service) Protect(ctx context.Context, req domain.RequestInfo, rule domain.Rule) (domain.Decision, error) {
	if isBot(req.UserAgent) {
		return domain.Decision{Reason: domain.DenyBot}, nil
	}
	if isSuspicious(req.Path, req.Query) {
		return domain.Decision{Reason: domain.DenyShield}, nil
	}

	over, err := s.overLimit(ctx, req.IP, rule)
	if err != nil {
		return domain.Decision{}, err
	}
	if over {
		return domain.Decision{Reason: domain.DenyRateLimit}, nil
	}

	return domain.Decision{Allowed: true}, nil
}

func isBot(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	if ua == "" {
		return false
	}
	for _, sig := range botSignatures {
		if strings.Contains(ua, sig) {
			return true
		}
	}
	return false
}

func isSuspicious(path, query string) bool {
	target := strings.ToLower(path)
	if query != "" {
		target += "?" + strings.ToLower(query)
	}
	for _, sig := range shieldSignatures {
		if strings.Contains(target, sig) {
			return true
		}
	}
	return false
}

// slidingWindow prunes entries older than the window start, then either
// rejects the request (ceiling reached) or records it — atomically, so a
// concurrent burst cannot slip past the ceiling between count and add.
// Requests denied at the ceiling are not recorded.
var slidingWindow = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], '0', ARGV[1])
if redis.call('ZCARD', KEYS[1]) >= tonumber(ARGV[2]) then
	return 1
end
redis.call('ZADD', KEYS[1], ARGV[3], ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return 0
`)

// overLimit counts requests from ip within the rule's sliding window using a
// Redis sorted set keyed by rule name and caller, scored by timestamp.
// Key format: admission:<rule_name>:<ip>
func (s *Service) overLimit(ctx context.Context, ip string, rule domain.Rule) (bool, error) {
	key := fmt.Sprintf("admission:%s:%s", rule.Name, ip)
	now := s.now()
	windowStart := now.Add(-rule.Interval).UnixNano()

	denied, err := slidingWindow.Run(ctx, s.rdb, []string{key},
		windowStart, rule.Max, now.UnixNano(), rule.Interval.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("rate window: %w", err)
	}
	return denied == 1, nil
}
