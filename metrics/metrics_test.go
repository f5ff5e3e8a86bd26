package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCalculation_CountsByResult(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(calculationsTotal.WithLabelValues("mal", ResultInvalid))
	ObserveCalculation("mal", ResultInvalid, time.Millisecond)
	after := testutil.ToFloat64(calculationsTotal.WithLabelValues("mal", ResultInvalid))

	assert.Equal(t, before+1, after)
}

func TestAddDonation_SumsAmount(t *testing.T) {
	Init()

	before := testutil.ToFloat64(donationsAmount.WithLabelValues("fitrah"))
	AddDonation("fitrah", 35000)
	AddDonation("fitrah", 0)

	assert.Equal(t, before+35000, testutil.ToFloat64(donationsAmount.WithLabelValues("fitrah")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	Init()
	IncRateLimited()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "zakat_rate_limited_total")
}
