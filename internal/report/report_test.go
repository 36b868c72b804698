package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RocketLaunchpad/faultguard/pkg/fault"
)

func testRecord(t *testing.T, category, message string) *Record {
	t.Helper()
	serr := fault.Translate(fault.New(category, message))
	start := time.Now().Add(-25 * time.Millisecond)
	return NewRecord(serr, start, time.Now())
}

func TestNewRecord_FreezesFault(t *testing.T) {
	serr := fault.Translate(fault.New("Frozen", "one shot").WithContext(map[string]any{"k": "v"}))
	start := time.Now().Add(-time.Second)
	end := time.Now()

	rec := NewRecord(serr, start, end)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "Frozen", rec.Category)
	assert.Equal(t, "one shot", rec.Message)
	assert.Equal(t, map[string]any{"k": "v"}, rec.Context)
	assert.Equal(t, end.Sub(start), rec.Duration)
	assert.NotEmpty(t, rec.Host.GoVersion)
}

func TestNewRecord_UniqueIDs(t *testing.T) {
	a := testRecord(t, "A", "first")
	b := testRecord(t, "A", "second")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.IncrStarted()
	m.IncrStarted()
	m.RecordSuccess()
	m.RecordFault(testRecord(t, "CatA", "x"))

	snapshot := m.Snapshot()
	assert.Equal(t, uint64(2), snapshot["calls_started"])
	assert.Equal(t, uint64(2), snapshot["calls_completed"])
	assert.Equal(t, uint64(1), snapshot["calls_succeeded"])
	assert.Equal(t, uint64(1), snapshot["faults_intercepted"])
}

func TestMetrics_ByCategoryIsACopy(t *testing.T) {
	m := NewMetrics()
	m.RecordFault(testRecord(t, "CatA", "x"))

	got := m.ByCategory()
	got["CatA"] = 999
	got["CatB"] = 1

	assert.Equal(t, map[string]uint64{"CatA": 1}, m.ByCategory())
}

func TestRecentLog_RingBuffer(t *testing.T) {
	l := NewRecentLog(3)

	for i := 0; i < 5; i++ {
		l.Record(testRecord(t, "Cat", fmt.Sprintf("fault %d", i)))
	}

	assert.Equal(t, 3, l.Len())

	samples := l.GetRecent(10)
	require.Len(t, samples, 3)
	// Oldest two were dropped; newest is last
	assert.Equal(t, "fault 2", samples[0].Message)
	assert.Equal(t, "fault 4", samples[2].Message)
}

func TestRecentLog_GetRecentLimits(t *testing.T) {
	l := NewRecentLog(10)
	for i := 0; i < 4; i++ {
		l.Record(testRecord(t, "Cat", fmt.Sprintf("fault %d", i)))
	}

	samples := l.GetRecent(2)
	require.Len(t, samples, 2)
	assert.Equal(t, "fault 2", samples[0].Message)
	assert.Equal(t, "fault 3", samples[1].Message)
}

func TestPrometheusExport_ContainsCounters(t *testing.T) {
	m := NewMetrics()
	m.IncrStarted()
	m.RecordFault(testRecord(t, "Exported", "boom"))

	text := m.PrometheusExport()

	assert.Contains(t, text, `faultguard_calls_total{state="started"} 1`)
	assert.Contains(t, text, "faultguard_faults_intercepted_total 1")
	assert.Contains(t, text, `faultguard_faults_by_category_total{category="Exported"} 1`)
	assert.Contains(t, text, "faultguard_fault_rate 1.000000")
	assert.True(t, strings.HasPrefix(text, "# HELP"))
}

func TestCollector_GathersCounters(t *testing.T) {
	m := NewMetrics()
	m.IncrStarted()
	m.RecordSuccess()
	m.RecordFault(testRecord(t, "Gathered", "boom"))

	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(NewCollector(m)))

	families, err := registry.Gather()
	require.NoError(t, err)

	found := make(map[string]bool)
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	assert.True(t, found["faultguard_calls_total"])
	assert.True(t, found["faultguard_faults_intercepted_total"])
	assert.True(t, found["faultguard_faults_by_category_total"])
}

// The collector and the hand-rolled text export are two views of the same
// counters; their family names must stay identical so operators see one
// vocabulary no matter which exposition path they scrape.
func TestCollector_MatchesExportVocabulary(t *testing.T) {
	m := NewMetrics()
	m.IncrStarted()
	m.RecordFault(testRecord(t, "Shared", "boom"))

	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(NewCollector(m)))

	families, err := registry.Gather()
	require.NoError(t, err)

	text := m.PrometheusExport()
	for _, mf := range families {
		assert.Contains(t, text, "# TYPE "+mf.GetName()+" ",
			"collector family %s missing from text export", mf.GetName())
	}
}

func TestPrometheusExport_EscapesCategoryLabel(t *testing.T) {
	m := NewMetrics()
	m.RecordFault(testRecord(t, "bad\"category\\with\nnewline", "boom"))

	text := m.PrometheusExport()

	assert.Contains(t, text,
		`faultguard_faults_by_category_total{category="bad\"category\\with\nnewline"} 1`)
	// Exactly one opening and one closing quote around the label value
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "faultguard_faults_by_category_total{") {
			assert.Equal(t, 2, strings.Count(line, `"`)-strings.Count(line, `\"`),
				"unescaped quote in label value: %s", line)
		}
	}
}
