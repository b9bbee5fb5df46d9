// Package filter removes the convex hulls that are mostly covered by
// another hull of the same set.
//
// Candidate pairs come from the bounding box index, each candidate is then
// settled with the exact convex intersection.
package filter

import (
	"math"
	"strconv"

	"github.com/bytearena/hullfilter/common/geometry"
	"github.com/bytearena/hullfilter/common/influxdb"
	"github.com/bytearena/hullfilter/common/utils"
	"github.com/bytearena/hullfilter/common/utils/number"
	uuid "github.com/satori/go.uuid"
)

type Report struct {
	RunID      string `json:"run_id"`
	Hulls      int    `json:"hulls"`
	Indexed    int    `json:"indexed"`
	Candidates int    `json:"candidates"`
	ExactTests int    `json:"exact_tests"`
	Mismatches int    `json:"mismatches"`
	Removed    []int  `json:"removed"`

	Kept []geometry.ConvexHull `json:"-"`
}

type Filter struct {
	options    Options
	metrics    *influxdb.Client
	exactTests *influxdb.Counter
	search     candidateSearch
}

// NewFilter checks the options. metrics may be nil.
func NewFilter(options Options, metrics *influxdb.Client) (*Filter, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	search := rtreeCandidates
	if options.Engine == EngineRTreego {
		search = rtreegoCandidates
	}

	return &Filter{
		options:    options,
		metrics:    metrics,
		exactTests: influxdb.NewCounter(),
		search:     search,
	}, nil
}

func (f *Filter) Run(hulls []geometry.ConvexHull) (Report, error) {
	report := Report{
		RunID:   uuid.NewV4().String(),
		Hulls:   len(hulls),
		Removed: make([]int, 0),
	}

	debugContext := utils.Context{"run": report.RunID}

	boxes := make([]indexedBox, 0, len(hulls))
	for i, hull := range hulls {
		if hull.Len() < 3 {
			continue
		}

		bb := hull.GetBoundingBox()
		if bb.IsDegenerate() {
			continue
		}

		boxes = append(boxes, indexedBox{index: i, bb: bb})
	}
	report.Indexed = len(boxes)

	utils.DebugWithContext("filter", "Indexing "+strconv.Itoa(len(boxes))+" of "+strconv.Itoa(len(hulls))+" hulls with "+f.options.Engine, debugContext)

	pairs, err := f.search(boxes, f.options.MinFanout, f.options.MaxFanout)
	if err != nil {
		return report, err
	}

	sortPairs(pairs)
	report.Candidates = len(pairs)

	utils.DebugWithContext("filter", strconv.Itoa(len(pairs))+" candidate pairs", debugContext)

	f.exactTests.Reset()
	removed := make([]bool, len(hulls))

	for n, pair := range pairs {
		a, b := pair[0], pair[1]

		if !removed[a] && !removed[b] {
			if remove, first := f.settle(hulls[a], hulls[b], &report); remove {
				if first {
					removed[a] = true
				} else {
					removed[b] = true
				}
			}
		}

		if f.options.Progress != nil {
			f.options.Progress(n+1, len(pairs))
		}
	}

	report.ExactTests = f.exactTests.Get()

	report.Kept = make([]geometry.ConvexHull, 0, len(hulls))
	for i, hull := range hulls {
		if removed[i] {
			report.Removed = append(report.Removed, hull.ID)
		} else {
			report.Kept = append(report.Kept, hull)
		}
	}

	utils.DebugWithContext("filter", strconv.Itoa(len(report.Removed))+" hulls removed", debugContext)

	f.writeMetrics(report)

	return report, nil
}

// settle tells whether one hull of the pair must go, and whether it is a.
// The smaller hull goes, b on a tie.
func (f *Filter) settle(a, b geometry.ConvexHull, report *Report) (bool, bool) {
	f.exactTests.Add(1)

	found, inter := a.Intersection(b)

	interArea := 0.0
	if found {
		interArea = inter.GetArea()
	}

	areaA := a.GetArea()
	areaB := b.GetArea()

	if f.options.Verify {
		expected := geometry.ClipArea(a, b)
		tolerance := number.EPSILON * math.Max(1, math.Max(areaA, areaB))

		if math.Abs(expected-interArea) > tolerance {
			report.Mismatches++
			utils.DebugWithContext("filter", "Intersection area mismatch", utils.Context{
				"run":      report.RunID,
				"a":        a.ID,
				"b":        b.ID,
				"area":     interArea,
				"expected": expected,
			})
		}
	}

	if !found {
		return false, false
	}

	first, smallerArea := false, areaB
	if areaA < areaB {
		first, smallerArea = true, areaA
	}

	return interArea >= f.options.ContainmentRatio*smallerArea, first
}

func (f *Filter) writeMetrics(report Report) {
	if f.metrics == nil {
		return
	}

	err := f.metrics.WriteAppMetric("filter", map[string]string{
		"run":    report.RunID,
		"engine": f.options.Engine,
	}, map[string]interface{}{
		"hulls":       report.Hulls,
		"indexed":     report.Indexed,
		"candidates":  report.Candidates,
		"exact_tests": report.ExactTests,
		"mismatches":  report.Mismatches,
		"removed":     len(report.Removed),
	})

	if err != nil {
		utils.DebugWithContext("filter", "Could not write metrics: "+err.Error(), utils.Context{"run": report.RunID})
	}
}
