package hullio

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const document = `{
	"convex hulls": [
		{"ID": 3, "apexes": [{"x": 0, "y": 0}, {"x": 1, "y": 0}, {"x": 1, "y": 1}]},
		{"ID": 9, "apexes": [{"x": 5, "y": 5}, {"x": 6.5, "y": 5}, {"x": 6, "y": 7}]}
	]
}`

func TestLoad(t *testing.T) {
	hulls, err := Load(strings.NewReader(document))
	require.Nil(t, err)
	require.Len(t, hulls, 2)

	assert.Equal(t, 3, hulls[0].ID)
	assert.Equal(t, 9, hulls[1].ID)
	assert.Equal(t, 6.5, hulls[1].Points[1].GetX())
	assert.InDelta(t, 0.5, hulls[0].GetArea(), 1e-9)
}

func TestLoadMalformed(t *testing.T) {
	examples := map[string]string{
		"Should reject invalid JSON":     `{"convex hulls": [`,
		"Should reject a missing key":    `{"hulls": []}`,
		"Should reject wrong types":      `{"convex hulls": [{"ID": "a", "apexes": []}]}`,
		"Should reject missing apexes":   `{"convex hulls": [{"ID": 1}]}`,
		"Should reject non numeric apex": `{"convex hulls": [{"ID": 1, "apexes": [{"x": "1", "y": 2}]}]}`,
		"Should reject a missing y":      `{"convex hulls": [{"ID": 1, "apexes": [{"x": 1}]}]}`,
		"Should reject a missing x":      `{"convex hulls": [{"ID": 1, "apexes": [{"x": 1, "y": 1}, {"y": 2}]}]}`,
		"Should reject an empty apex":    `{"convex hulls": [{"ID": 1, "apexes": [{}]}]}`,
		"Should reject a null apexes":    `{"convex hulls": [{"ID": 1, "apexes": null}]}`,
		"Should reject a missing ID":     `{"convex hulls": [{"apexes": [{"x": 1, "y": 1}]}]}`,
		"Should reject trailing content": `{"convex hulls": []} trailing`,
		"Should reject a second value":   `{"convex hulls": []} {"convex hulls": []}`,
	}

	for name, input := range examples {
		t.Run(name, func(t *testing.T) {
			hulls, err := Load(strings.NewReader(input))
			assert.NotNil(t, err)
			assert.Nil(t, hulls)
		})
	}
}

func TestLoadEmptyAndTrailingSpace(t *testing.T) {
	hulls, err := Load(strings.NewReader("{\"convex hulls\": []}\n\n"))
	require.Nil(t, err)
	assert.Empty(t, hulls)
}

func TestWriteThenLoad(t *testing.T) {
	hulls, err := Load(strings.NewReader(document))
	require.Nil(t, err)

	buf := bytes.NewBuffer(nil)
	require.Nil(t, Write(buf, hulls))
	assert.Contains(t, buf.String(), `"convex hulls"`)
	assert.Contains(t, buf.String(), `"apexes"`)

	back, err := Load(buf)
	require.Nil(t, err)
	assert.Equal(t, ToRecords(hulls), ToRecords(back))
}

func TestFiles(t *testing.T) {
	dir, err := ioutil.TempDir("", "hullio")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	hulls, err := Load(strings.NewReader(document))
	require.Nil(t, err)

	filename := filepath.Join(dir, "out.json")
	require.Nil(t, WriteFile(filename, hulls))

	back, err := LoadFile(filename)
	require.Nil(t, err)
	assert.Len(t, back, 2)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.NotNil(t, err)
}
