package report

// A fault is frozen exactly once, at interception time.
// Counters and samples are projections of frozen records.
// Never reinterpret, never recompute.

import (
	"fmt"
	"sort"
	"strings"
)

// PrometheusExport generates Prometheus metrics in text format.
// Boring counters only, projected straight from Metrics.
func (m *Metrics) PrometheusExport() string {
	snapshot := m.Snapshot()

	var b strings.Builder

	b.WriteString("# HELP faultguard_calls_total Supervised calls by state\n")
	b.WriteString("# TYPE faultguard_calls_total counter\n")
	b.WriteString(fmt.Sprintf("faultguard_calls_total{state=\"started\"} %d\n", snapshot["calls_started"]))
	b.WriteString(fmt.Sprintf("faultguard_calls_total{state=\"completed\"} %d\n", snapshot["calls_completed"]))
	b.WriteString(fmt.Sprintf("faultguard_calls_total{state=\"succeeded\"} %d\n", snapshot["calls_succeeded"]))

	b.WriteString("\n# HELP faultguard_faults_intercepted_total Unwinds intercepted and translated\n")
	b.WriteString("# TYPE faultguard_faults_intercepted_total counter\n")
	b.WriteString(fmt.Sprintf("faultguard_faults_intercepted_total %d\n", snapshot["faults_intercepted"]))

	// Per-category breakdown, sorted for stable output
	byCategory := m.ByCategory()
	if len(byCategory) > 0 {
		categories := make([]string, 0, len(byCategory))
		for c := range byCategory {
			categories = append(categories, c)
		}
		sort.Strings(categories)

		b.WriteString("\n# HELP faultguard_faults_by_category_total Intercepted faults by category\n")
		b.WriteString("# TYPE faultguard_faults_by_category_total counter\n")
		for _, c := range categories {
			b.WriteString(fmt.Sprintf("faultguard_faults_by_category_total{category=\"%s\"} %d\n", escapeLabelValue(c), byCategory[c]))
		}
	}

	// Derived metric (fault rate) - optional but useful
	completed := snapshot["calls_completed"]
	if completed > 0 {
		faults := snapshot["faults_intercepted"]
		faultRate := float64(faults) / float64(completed)
		b.WriteString("\n# HELP faultguard_fault_rate Fraction of completed calls that faulted (0-1)\n")
		b.WriteString("# TYPE faultguard_fault_rate gauge\n")
		b.WriteString(fmt.Sprintf("faultguard_fault_rate %.6f\n", faultRate))
	}

	return b.String()
}

// labelEscaper escapes label values per the Prometheus text exposition
// format. Categories are arbitrary caller strings, so a quote, backslash
// or newline must not be written into the output raw.
var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func escapeLabelValue(v string) string {
	return labelEscaper.Replace(v)
}
