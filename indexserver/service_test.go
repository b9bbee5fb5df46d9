package indexserver

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytearena/hullfilter/indexserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, path string, body string) *httptest.ResponseRecorder {
	service := NewIndexService(":0")
	service.SetLogger(ioutil.Discard)

	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	service.Router().ServeHTTP(rec, req)

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), dest), rec.Body.String())
}

func TestIntersection(t *testing.T) {
	rec := post(t, "/intersection", `{
		"a": [[0, 0], [10, 0], [10, 10]],
		"b": [[0, 11], [11, 0], [11, 11]]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res types.IntersectionResponse
	decodeBody(t, rec, &res)

	assert.True(t, res.Found)
	assert.Len(t, res.Points, 3)
	for _, expected := range [][2]float64{{10, 1}, {10, 10}, {5.5, 5.5}} {
		assert.True(t, containsPoint(res.Points, expected), "missing %v in %v", expected, res.Points)
	}
	assert.InDelta(t, 20.25, res.Area, 1e-6)
}

func containsPoint(points [][2]float64, expected [2]float64) bool {
	for _, p := range points {
		if math.Abs(p[0]-expected[0]) < 1e-6 && math.Abs(p[1]-expected[1]) < 1e-6 {
			return true
		}
	}
	return false
}

func TestIntersectionDisjoint(t *testing.T) {
	rec := post(t, "/intersection", `{
		"a": [[0, 0], [1, 0], [1, 1]],
		"b": [[5, 5], [6, 5], [6, 6]]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res types.IntersectionResponse
	decodeBody(t, rec, &res)

	assert.False(t, res.Found)
}

func TestArea(t *testing.T) {
	rec := post(t, "/area", `{"points": [[0, 0], [1, 0], [1, 1]]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res types.AreaResponse
	decodeBody(t, rec, &res)

	assert.InDelta(t, 0.5, res.Area, 1e-9)
}

func TestBoundingBox(t *testing.T) {
	rec := post(t, "/boundingbox", `{"points": [[1, 5], [-2, 3], [4, -1]]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res types.BoundingBoxResponse
	decodeBody(t, rec, &res)

	assert.Equal(t, [4]float64{-2, -1, 4, 5}, res.BB)
}

func TestRTreeDump(t *testing.T) {
	rec := post(t, "/rtree", `{
		"m": 1, "M": 2,
		"entries": [[0, 0, 0, 1, 1], [0.2, 2, 2, 3, 3]]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.JSONEq(t, `{
		"value": -1,
		"bb": [0, 0, 3, 3],
		"children": [
			{"value": 0, "bb": [0, 0, 1, 1], "children": []},
			{"value": 1, "bb": [2, 2, 3, 3], "children": []}
		]
	}`, rec.Body.String())
}

func TestRTreePairwise(t *testing.T) {
	rec := post(t, "/rtree", `{
		"m": 1, "M": 3, "mode": "pairwise",
		"entries": [
			[0, 0, 0, 2, 2],
			[1, 1, 1, 3, 3],
			[2, 10, 10, 11, 11],
			[3, 2.5, 2.5, 4, 4]
		]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res types.PairwiseResponse
	decodeBody(t, rec, &res)

	assert.ElementsMatch(t, [][2]int{{0, 1}, {1, 3}}, toArrays(res))
}

func toArrays(res types.PairwiseResponse) [][2]int {
	out := make([][2]int, len(res.Pairs))
	for i, pair := range res.Pairs {
		out[i] = [2]int(pair)
	}
	return out
}

func TestRTreeQueries(t *testing.T) {
	rec := post(t, "/rtree", `{
		"m": 1, "M": 2,
		"entries": [[0, 0, 0, 1, 1], [1, 2, 2, 3, 3], [2, 5, 5, 6, 6]],
		"queries": [[0.5, 0.5, 2.5, 2.5], [20, 20, 21, 21]]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res types.QueriesResponse
	decodeBody(t, rec, &res)

	require.Len(t, res.Results, 2)
	assert.ElementsMatch(t, []int{0, 1}, res.Results[0])
	assert.Empty(t, res.Results[1])
}

func TestMalformedRequests(t *testing.T) {
	cases := []struct {
		name string
		path string
		body string
	}{
		{"not json", "/area", `{"points": `},
		{"unknown field", "/area", `{"pts": [[0, 0]]}`},
		{"missing points", "/area", `{}`},
		{"short row", "/area", `{"points": [[0, 0], [1]]}`},
		{"string coordinate", "/boundingbox", `{"points": [[0, "a"]]}`},
		{"missing hull", "/intersection", `{"a": [[0, 0], [1, 0], [1, 1]]}`},
		{"invalid fanout", "/rtree", `{"m": 2, "M": 3, "entries": []}`},
		{"missing entries", "/rtree", `{"m": 1, "M": 2}`},
		{"short entry", "/rtree", `{"m": 1, "M": 2, "entries": [[0, 0, 0, 1]]}`},
		{"negative id", "/rtree", `{"m": 1, "M": 2, "entries": [[-1, 0, 0, 1, 1]]}`},
		{"inverted box", "/rtree", `{"m": 1, "M": 2, "entries": [[0, 1, 1, 0, 0]]}`},
		{"degenerate box", "/rtree", `{"m": 1, "M": 2, "entries": [[0, 0, 0, 0, 1]]}`},
		{"short query", "/rtree", `{"m": 1, "M": 2, "entries": [], "queries": [[0, 0]]}`},
		{"unknown mode", "/rtree", `{"m": 1, "M": 2, "entries": [], "mode": "bulk"}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := post(t, c.path, c.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var res types.ErrorResponse
			decodeBody(t, rec, &res)
			assert.NotEmpty(t, res.Error)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	service := NewIndexService(":0")
	service.SetLogger(ioutil.Discard)

	rec := httptest.NewRecorder()
	service.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/area", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	service := NewIndexService(":0")
	service.SetLogger(ioutil.Discard)

	rec := httptest.NewRecorder()
	service.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Name":"intersection"`)
	assert.Contains(t, rec.Body.String(), `"Name":"index"`)
}
