package v1

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestChartSpecUnmarshalJSON(t *testing.T) {
	payload := `{"type":"line","title":"Revenue","data":[{"day":"Mon","revenue":4200,"note":null,"flag":true},{"day":"Fri","revenue":6100.5,"extra":{"a":1}}]}`

	var spec ChartSpec
	require.NoError(t, json.Unmarshal([]byte(payload), &spec))

	assert.Equal(t, ChartLine, spec.Type)
	assert.Equal(t, "Revenue", spec.Title)
	require.Len(t, spec.Rows, 2)

	day, ok := spec.Rows[0].Get("day")
	require.True(t, ok)
	text, _ := day.Text()
	assert.Equal(t, "Mon", text)

	rev, ok := spec.Rows[1]["revenue"].Float64()
	require.True(t, ok)
	assert.InDelta(t, 6100.5, rev, 1e-9)

	_, ok = spec.Rows[0].Get("note")
	assert.False(t, ok, "null fields are undefined")
	_, ok = spec.Rows[0].Get("flag")
	assert.False(t, ok, "booleans are not kept")
	_, ok = spec.Rows[1].Get("extra")
	assert.False(t, ok, "nested objects are not kept")
}

func TestRowUnmarshalJSONRejectsNonObject(t *testing.T) {
	var rows []Row
	err := json.Unmarshal([]byte(`[1, 2]`), &rows)
	assert.Error(t, err)
}

func TestRowUnmarshalYAML(t *testing.T) {
	doc := `
type: pie
title: Hashtags
data:
  - hashtag: "#go"
    posts: 100
  - hashtag: "#rust"
    engagement: 8.4
    tags: [a, b]
`
	var spec ChartSpec
	require.NoError(t, yaml.Unmarshal([]byte(doc), &spec))
	assert.Equal(t, ChartPie, spec.Type)
	require.Len(t, spec.Rows, 2)

	posts, ok := spec.Rows[0]["posts"].Float64()
	require.True(t, ok)
	assert.Equal(t, 100.0, posts)

	eng, ok := spec.Rows[1]["engagement"].Float64()
	require.True(t, ok)
	assert.InDelta(t, 8.4, eng, 1e-9)

	_, ok = spec.Rows[1].Get("tags")
	assert.False(t, ok)
}

func TestValueMarshalJSON(t *testing.T) {
	row := Row{"day": String("Mon"), "revenue": Number(42), "gone": {}}
	b, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":"Mon","revenue":42,"gone":null}`, string(b))
}
