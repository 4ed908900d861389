package vitals

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		load float64
		want Rating
	}{
		{0, RatingGreat},
		{2999, RatingGreat},
		{3000, RatingGood},
		{4999.9, RatingGood},
		{5000, RatingPoor},
		{12000, RatingPoor},
	}
	for _, tt := range tests {
		if got := Classify(tt.load); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.load, got, tt.want)
		}
	}
}

func TestTip(t *testing.T) {
	if !strings.Contains(Tip("slow-2g"), "simplified") || Tip("2g") != Tip("slow-2g") {
		t.Errorf("2g tip = %q", Tip("2g"))
	}
	if !strings.Contains(Tip("3g"), "lazy-loaded") {
		t.Errorf("3g tip = %q", Tip("3g"))
	}
	for _, typ := range []string{"4g", "", "unknown"} {
		if got := Tip(typ); got != "" {
			t.Errorf("Tip(%q) = %q, want empty", typ, got)
		}
	}
}

func newTestMonitor() (*Monitor, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	return NewMonitor(logger), &buf
}

func TestRecord(t *testing.T) {
	m, buf := newTestMonitor()

	rating := m.Record(Report{
		Page:       "/index.html",
		FCP:        420,
		Load:       1800,
		Connection: &Connection{EffectiveType: "3g", Downlink: 1.5, RTT: 300},
		Images:     10,
	})
	if rating != RatingGreat {
		t.Errorf("rating = %q", rating)
	}
	out := buf.String()
	for _, want := range []string{"level=info", "rating=great", "connection=3g", "load_ms=1800", "lazy-loaded"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q: %s", want, out)
		}
	}
}

func TestRecordPoorAndFailedImages(t *testing.T) {
	m, buf := newTestMonitor()

	m.Record(Report{Load: 7000, FailedImages: []string{"/images/dessert-2.jpg"}})
	out := buf.String()
	if !strings.Contains(out, "image failed to load") || !strings.Contains(out, "src=/images/dessert-2.jpg") {
		t.Errorf("failed image not logged: %s", out)
	}
	if !strings.Contains(out, "level=warning") || !strings.Contains(out, "rating=poor") {
		t.Errorf("poor load not warned: %s", out)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		report  Report
		wantErr bool
	}{
		{"zero", Report{}, false},
		{"full", Report{FCP: 1, LCP: 2, DOMReady: 3, Load: 4, Images: 5}, false},
		{"negative load", Report{Load: -1}, true},
		{"negative fcp", Report{FCP: -0.5}, true},
		{"negative images", Report{Images: -2}, true},
		{"negative rtt", Report{Connection: &Connection{RTT: -1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.report.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordRoute(t *testing.T) {
	m, buf := newTestMonitor()
	r := chi.NewRouter()
	RegisterRoutes(r, m)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"page":"/","load":2500,"images":10}`, http.StatusNoContent},
		{"bad json", `{"load":`, http.StatusBadRequest},
		{"negative timing", `{"load":-5}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/vitals", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
	if strings.Count(buf.String(), "page vitals") != 1 {
		t.Errorf("expected exactly one recorded report: %s", buf.String())
	}
}
