package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveBuildDuration(3 * time.Millisecond)
	pr.IncBuildOutcome(OutcomeSuccess)
	pr.IncBuildOutcome(OutcomeSuccess)
	pr.IncBuildOutcome(OutcomeInvalid)
	pr.SetTreeSize(70, 58)
	pr.IncLookup(LookupHit)
	pr.IncLookup(LookupMiss)

	require.Equal(t, 2.0, testutil.ToFloat64(pr.buildOutcome.WithLabelValues(OutcomeSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(pr.buildOutcome.WithLabelValues(OutcomeInvalid)))
	require.Equal(t, 70.0, testutil.ToFloat64(pr.treeNodes))
	require.Equal(t, 58.0, testutil.ToFloat64(pr.treePages))
	require.Equal(t, 1.0, testutil.ToFloat64(pr.lookups.WithLabelValues(LookupMiss)))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 5)
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncBuildOutcome(OutcomeSuccess)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), `docnav_build_outcomes_total{outcome="success"} 1`))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveBuildDuration(time.Second)
	r.IncBuildOutcome(OutcomeError)
	r.SetTreeSize(1, 1)
	r.IncLookup(LookupHit)
}
