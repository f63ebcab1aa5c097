// Package summary recomputes per-name statistics from a trace document.
package summary

import (
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"timetrace/tef"
)

// Row is the aggregate for one region name across all goroutines.
type Row struct {
	Name     string
	Count    int
	Total    time.Duration
	Min      time.Duration
	Max      time.Duration
	MeanMs   float64
	StddevMs float64
}

// totalPrefix marks the synthetic aggregate rows a writer appends to the
// timeline; they are derived data and excluded from recomputation.
const totalPrefix = "Total "

// Compute folds the document's complete events into one row per name,
// sorted by descending total duration with ties broken by name. Metadata
// events and synthetic total rows are ignored.
func Compute(doc *tef.File) []Row {
	samples := make(map[string][]float64)
	order := make([]string, 0, 16)
	for i := range doc.TraceEvents {
		ev := &doc.TraceEvents[i]
		if ev.Ph != tef.PhaseComplete || strings.HasPrefix(ev.Name, totalPrefix) {
			continue
		}
		if _, seen := samples[ev.Name]; !seen {
			order = append(order, ev.Name)
		}
		samples[ev.Name] = append(samples[ev.Name], float64(ev.Dur)/1000.0)
	}

	rows := make([]Row, 0, len(order))
	for _, name := range order {
		ms := samples[name]
		row := Row{Name: name, Count: len(ms)}
		minMs, maxMs := ms[0], ms[0]
		var totalMs float64
		for _, v := range ms {
			totalMs += v
			if v < minMs {
				minMs = v
			}
			if v > maxMs {
				maxMs = v
			}
		}
		mean, stddev := stat.MeanStdDev(ms, nil)
		if len(ms) < 2 {
			stddev = 0
		}
		row.Total = time.Duration(totalMs * float64(time.Millisecond))
		row.Min = time.Duration(minMs * float64(time.Millisecond))
		row.Max = time.Duration(maxMs * float64(time.Millisecond))
		row.MeanMs = mean
		row.StddevMs = stddev
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
