package filter

import (
	"strconv"

	bettererrors "github.com/xtuc/better-errors"
)

const (
	EngineRTree   = "rtree"
	EngineRTreego = "rtreego"
)

type Options struct {
	MinFanout int
	MaxFanout int

	// a hull is removed when at least this share of its area lies inside
	// an overlapping hull
	ContainmentRatio float64

	// EngineRTree or EngineRTreego, selects the candidate pair search
	Engine string

	// Verify recomputes every intersection area with the polygon clipper
	// and reports the mismatches
	Verify bool

	// Progress, when set, is called after each candidate pair
	Progress func(done, total int)
}

func DefaultOptions() Options {
	return Options{
		MinFanout:        5,
		MaxFanout:        10,
		ContainmentRatio: 0.8,
		Engine:           EngineRTree,
	}
}

func (o Options) Validate() error {
	if o.MinFanout < 1 || o.MaxFanout < 2*o.MinFanout {
		return bettererrors.
			NewFromString("Invalid fanout: expected m >= 1 and M >= 2m").
			SetContext("m", strconv.Itoa(o.MinFanout)).
			SetContext("M", strconv.Itoa(o.MaxFanout))
	}

	if o.ContainmentRatio <= 0 || o.ContainmentRatio > 1 {
		return bettererrors.
			NewFromString("Invalid containment ratio: expected a value in (0, 1]").
			SetContext("ratio", strconv.FormatFloat(o.ContainmentRatio, 'f', -1, 64))
	}

	switch o.Engine {
	case EngineRTree, EngineRTreego:
	default:
		return bettererrors.
			NewFromString("Unknown engine").
			SetContext("engine", o.Engine)
	}

	return nil
}
