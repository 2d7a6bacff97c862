package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestObserveHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/v1/books", "200"))
	ObserveHTTPRequest("GET", "/api/v1/books", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/v1/books", "200"))
	assert.Equal(t, before+1, after)
}

func TestIncAuthOutcome(t *testing.T) {
	before := testutil.ToFloat64(authOutcomes.WithLabelValues(AuthForbidden))
	IncAuthOutcome(AuthForbidden)
	assert.Equal(t, before+1, testutil.ToFloat64(authOutcomes.WithLabelValues(AuthForbidden)))
}

func TestIncCommit(t *testing.T) {
	before := testutil.ToFloat64(commits.WithLabelValues("books", "failed"))
	IncCommit("books", "failed")
	assert.Equal(t, before+1, testutil.ToFloat64(commits.WithLabelValues("books", "failed")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	Register()
	IncAuthOutcome(AuthLoginSucceeded)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "bookstore_auth_outcomes_total")
}
