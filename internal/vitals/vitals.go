// Package vitals receives page performance measurements posted by the
// site and records them as structured log entries.
package vitals

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/puchicavos/website/internal/logging"
)

// Rating grades a page load time.
type Rating string

const (
	RatingGreat Rating = "great"
	RatingGood  Rating = "good"
	RatingPoor  Rating = "poor"
)

// Load time thresholds in milliseconds.
const (
	GreatThreshold = 3000
	GoodThreshold  = 5000
)

// Connection mirrors the Network Information API fields reported by the browser.
type Connection struct {
	EffectiveType string  `json:"effective_type"`
	Downlink      float64 `json:"downlink"` // Mbps
	RTT           float64 `json:"rtt"`      // ms
}

// Memory is the JS heap usage in megabytes, when the browser exposes it.
type Memory struct {
	UsedMB  float64 `json:"used_mb"`
	TotalMB float64 `json:"total_mb"`
}

// Report is one page view's measurements. Timings are milliseconds
// since navigation start; zero means not measured.
type Report struct {
	Page         string      `json:"page"`
	FCP          float64     `json:"fcp"`
	LCP          float64     `json:"lcp"`
	DOMReady     float64     `json:"dom_ready"`
	Load         float64     `json:"load"`
	Connection   *Connection `json:"connection,omitempty"`
	Memory       *Memory     `json:"memory,omitempty"`
	Images       int         `json:"images"`
	FailedImages []string    `json:"failed_images,omitempty"`
}

// Validate rejects negative timings and counts.
func (r Report) Validate() error {
	timings := []struct {
		name string
		v    float64
	}{{"fcp", r.FCP}, {"lcp", r.LCP}, {"dom_ready", r.DOMReady}, {"load", r.Load}}
	for _, t := range timings {
		if t.v < 0 {
			return fmt.Errorf("%s must not be negative", t.name)
		}
	}
	if r.Images < 0 {
		return fmt.Errorf("images must not be negative")
	}
	if r.Connection != nil && (r.Connection.Downlink < 0 || r.Connection.RTT < 0) {
		return fmt.Errorf("connection downlink and rtt must not be negative")
	}
	return nil
}

// Classify grades a page load time in milliseconds.
func Classify(loadMS float64) Rating {
	switch {
	case loadMS < GreatThreshold:
		return RatingGreat
	case loadMS < GoodThreshold:
		return RatingGood
	default:
		return RatingPoor
	}
}

// Tip returns advice for the given effective connection type, or "".
func Tip(effectiveType string) string {
	switch effectiveType {
	case "slow-2g", "2g":
		return "visitor is on a slow connection; consider serving a simplified version"
	case "3g":
		return "visitor is on 3G; images are lazy-loaded to save bandwidth"
	default:
		return ""
	}
}

// Monitor logs each recorded report.
type Monitor struct {
	log logrus.FieldLogger
}

// NewMonitor creates a Monitor. A nil logger discards entries.
func NewMonitor(logger logrus.FieldLogger) *Monitor {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Monitor{log: logger}
}

// Record logs r at info level, or warn when the load was poor or
// images failed. It returns the load rating.
func (m *Monitor) Record(r Report) Rating {
	rating := Classify(r.Load)
	fields := logrus.Fields{
		"page":    r.Page,
		"fcp_ms":  r.FCP,
		"lcp_ms":  r.LCP,
		"dom_ms":  r.DOMReady,
		"load_ms": r.Load,
		"rating":  rating,
		"images":  r.Images,
		"failed":  len(r.FailedImages),
	}
	if c := r.Connection; c != nil {
		fields["connection"] = c.EffectiveType
		fields["downlink_mbps"] = c.Downlink
		fields["rtt_ms"] = c.RTT
		if tip := Tip(c.EffectiveType); tip != "" {
			fields["tip"] = tip
		}
	}
	if mem := r.Memory; mem != nil {
		fields["heap_used_mb"] = mem.UsedMB
		fields["heap_total_mb"] = mem.TotalMB
	}

	entry := m.log.WithFields(fields)
	for _, src := range r.FailedImages {
		entry.WithField("src", src).Warn("image failed to load")
	}
	if rating == RatingPoor {
		entry.Warn("page load over 5 seconds")
		return rating
	}
	entry.Info("page vitals")
	return rating
}
