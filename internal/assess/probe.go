package assess

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkarpov/claimsift/internal/util"
)

// WebsiteProbe checks whether a firm's website answers at all. The result is
// informational only: it supplements, never overrides, the local email
// domain signals. Probes honor robots.txt.
type WebsiteProbe struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	userAgent  string
}

// NewWebsiteProbe creates a probe with the given timeout and user agent.
func NewWebsiteProbe(timeout time.Duration, userAgent string) *WebsiteProbe {
	return &WebsiteProbe{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:    util.NewRobotsChecker(userAgent, timeout),
		userAgent: userAgent,
	}
}

// Check probes https://<domain>/ with a HEAD request. The second result is
// false when no determination was made (robots disallow, request error on
// the robots side, etc.); callers then leave the flag unset.
func (p *WebsiteProbe) Check(ctx context.Context, domain string) (reachable, ok bool) {
	target := "https://" + domain + "/"

	allowed, err := p.robots.CanFetch(ctx, target)
	if err != nil || !allowed {
		return false, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false, false
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false, true
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode >= 200 && resp.StatusCode < 400, true
}
