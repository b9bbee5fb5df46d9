// Package hullio reads and writes convex hull sets as JSON documents of the
// form {"convex hulls": [{"ID": 0, "apexes": [{"x": 0, "y": 0}, ...]}]}.
package hullio

import (
	"encoding/json"
	"io"
	"os"

	"github.com/bytearena/hullfilter/common/geometry"
	"github.com/bytearena/hullfilter/common/utils/vector"
	"github.com/pkg/errors"
)

type Apex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type HullRecord struct {
	ID     int    `json:"ID"`
	Apexes []Apex `json:"apexes"`
}

type Document struct {
	ConvexHulls []HullRecord `json:"convex hulls"`
}

type rawApex struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type rawHullRecord struct {
	ID     *int       `json:"ID"`
	Apexes *[]rawApex `json:"apexes"`
}

// Load decodes a document. Nothing is returned unless the whole document
// is well formed: every hull has an ID and apexes, every apex has x and y,
// and nothing follows the document.
func Load(r io.Reader) ([]geometry.ConvexHull, error) {
	var raw struct {
		ConvexHulls *[]rawHullRecord `json:"convex hulls"`
	}

	decoder := json.NewDecoder(r)

	if err := decoder.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "Could not decode convex hulls document")
	}

	if _, err := decoder.Token(); err != io.EOF {
		return nil, errors.New("Unexpected content after the convex hulls document")
	}

	if raw.ConvexHulls == nil {
		return nil, errors.New("Missing \"convex hulls\" in document")
	}

	records := make([]HullRecord, len(*raw.ConvexHulls))
	for i, rawRecord := range *raw.ConvexHulls {
		if rawRecord.ID == nil {
			return nil, errors.Errorf("Convex hull #%d has no ID", i)
		}

		if rawRecord.Apexes == nil {
			return nil, errors.Errorf("Convex hull #%d (ID %d) has no apexes", i, *rawRecord.ID)
		}

		apexes := make([]Apex, len(*rawRecord.Apexes))
		for j, rawApex := range *rawRecord.Apexes {
			if rawApex.X == nil || rawApex.Y == nil {
				return nil, errors.Errorf("Apex #%d of convex hull #%d (ID %d) needs both x and y", j, i, *rawRecord.ID)
			}

			apexes[j] = Apex{X: *rawApex.X, Y: *rawApex.Y}
		}

		records[i] = HullRecord{ID: *rawRecord.ID, Apexes: apexes}
	}

	return FromRecords(records), nil
}

func LoadFile(filename string) ([]geometry.ConvexHull, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not open convex hulls file (%s)", filename)
	}
	defer file.Close()

	hulls, err := Load(file)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not load convex hulls file (%s)", filename)
	}

	return hulls, nil
}

func FromRecords(records []HullRecord) []geometry.ConvexHull {
	hulls := make([]geometry.ConvexHull, len(records))
	for i, record := range records {
		points := make([]vector.Vector2, len(record.Apexes))
		for j, apex := range record.Apexes {
			points[j] = vector.MakeVector2(apex.X, apex.Y)
		}
		hulls[i] = geometry.MakeConvexHull(points, record.ID)
	}

	return hulls
}

func ToRecords(hulls []geometry.ConvexHull) []HullRecord {
	records := make([]HullRecord, len(hulls))
	for i, hull := range hulls {
		apexes := make([]Apex, len(hull.Points))
		for j, p := range hull.Points {
			apexes[j] = Apex{X: p.GetX(), Y: p.GetY()}
		}
		records[i] = HullRecord{ID: hull.ID, Apexes: apexes}
	}

	return records
}

func Write(w io.Writer, hulls []geometry.ConvexHull) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(Document{ConvexHulls: ToRecords(hulls)}); err != nil {
		return errors.Wrap(err, "Could not encode convex hulls document")
	}

	return nil
}

func WriteFile(filename string, hulls []geometry.ConvexHull) error {
	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, "Could not create output file (%s)", filename)
	}

	if err := Write(file, hulls); err != nil {
		file.Close()
		return errors.Wrapf(err, "Could not write output file (%s)", filename)
	}

	return file.Close()
}
