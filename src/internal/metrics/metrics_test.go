package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                           "/",
		"/":                          "/",
		"/me":                        "/me",
		"/admin/withdrawals/process": "/admin/withdrawals",
		"/swagger/openapi.json":      "/swagger/openapi.json",
		"/auth/signup/":              "/auth/signup",
	}
	for raw, want := range cases {
		if got := canonicalPath(raw); got != want {
			t.Fatalf("canonicalPath(%q): expected %q, got %q", raw, want, got)
		}
	}
}

func TestInstrumentHandlerCountsStatus(t *testing.T) {
	handler := InstrumentHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/program", "418"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/program", nil))
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/program", "418"))

	if after-before != 1 {
		t.Fatalf("expected one recorded request, got %v", after-before)
	}
}

func TestHandlerExposesBusinessCounters(t *testing.T) {
	RecordSignup()
	RecordReferralCredit("direct", true)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, "cfc_identity_signups_total") {
		t.Fatalf("expected signup counter in output")
	}
	if !strings.Contains(body, `cfc_ledger_referral_credits_total{level="direct",outcome="credited"}`) {
		t.Fatalf("expected referral credit counter in output")
	}
}
