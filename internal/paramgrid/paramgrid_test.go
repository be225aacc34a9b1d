package paramgrid

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// ctyCmp compares cty values by equality instead of by internal structure.
var ctyCmp = cmp.Comparer(func(a, b cty.Value) bool { return a.RawEquals(b) })

func sampleParams() map[string][]cty.Value {
	return map[string][]cty.Value{
		"lr":         {cty.MustParseNumberVal("0.1"), cty.MustParseNumberVal("0.01")},
		"activation": {cty.StringVal("relu"), cty.StringVal("tanh"), cty.StringVal("gelu")},
		"bias":       {cty.True},
	}
}

func TestExpand_Ordering(t *testing.T) {
	t.Parallel()

	// --- Act ---
	g, err := Expand(sampleParams())

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{"activation", "bias", "lr"}, g.Columns)
	require.Equal(t, 6, g.Len())

	relu, tanh, gelu := cty.StringVal("relu"), cty.StringVal("tanh"), cty.StringVal("gelu")
	hi, lo := cty.MustParseNumberVal("0.1"), cty.MustParseNumberVal("0.01")
	want := [][]cty.Value{
		{relu, cty.True, hi},
		{relu, cty.True, lo},
		{tanh, cty.True, hi},
		{tanh, cty.True, lo},
		{gelu, cty.True, hi},
		{gelu, cty.True, lo},
	}
	if diff := cmp.Diff(want, g.Rows, ctyCmp); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand_RowCountIsProduct(t *testing.T) {
	t.Parallel()

	params := map[string][]cty.Value{
		"a": {cty.NumberIntVal(1), cty.NumberIntVal(2)},
		"b": {cty.NumberIntVal(1), cty.NumberIntVal(2), cty.NumberIntVal(3)},
		"c": {cty.NumberIntVal(1), cty.NumberIntVal(2), cty.NumberIntVal(3), cty.NumberIntVal(4)},
	}
	g, err := Expand(params)
	require.NoError(t, err)
	require.Equal(t, 24, g.Len())

	seen := map[string]bool{}
	for i := range g.Rows {
		key, err := RowJSON(g.Row(i))
		require.NoError(t, err)
		seen[string(key)] = true
	}
	require.Len(t, seen, 24, "every combination must appear exactly once")
}

func TestExpand_Errors(t *testing.T) {
	t.Parallel()

	testCases := map[string]map[string][]cty.Value{
		"no parameters": {},
		"empty values":  {"lr": {}},
		"null value":    {"lr": {cty.NullVal(cty.Number)}},
	}
	for name, params := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Expand(params)
			require.Error(t, err)
		})
	}
}

func TestWrite_Format(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, err := Expand(map[string][]cty.Value{
		"lr":    {cty.NumberFloatVal(0.5), cty.NumberIntVal(2)},
		"model": {cty.StringVal("mlp")},
	})
	require.NoError(t, err)

	// --- Act ---
	var buf bytes.Buffer
	err = Write(&buf, g, DefaultSeparator)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "\tlr\tmodel\n0\t0.5\tmlp\n1\t2\tmlp\n", buf.String())
}

func TestWrite_LargeIntegersStayIntegers(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, err := Expand(map[string][]cty.Value{
		"steps": {cty.NumberIntVal(1000000), cty.NumberIntVal(12345678)},
		"lr":    {cty.MustParseNumberVal("0.0001")},
	})
	require.NoError(t, err)

	// --- Act ---
	var buf bytes.Buffer
	err = Write(&buf, g, DefaultSeparator)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "\tlr\tsteps\n0\t0.0001\t1000000\n1\t0.0001\t12345678\n", buf.String())
}

func TestWrite_RejectsCollections(t *testing.T) {
	t.Parallel()

	g := Grid{
		Columns: []string{"layers"},
		Rows:    [][]cty.Value{{cty.ListVal([]cty.Value{cty.NumberIntVal(1)})}},
	}
	var buf bytes.Buffer
	require.Error(t, Write(&buf, g, ','))
}

func TestExtractRow_RoundTrip(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, err := Expand(sampleParams())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "parameters_flat.csv")
	require.NoError(t, WriteFile(path, g, ','))

	for line := 1; line <= g.Len(); line++ {
		// --- Act ---
		row, err := ExtractRow(path, line, ',')

		// --- Assert ---
		require.NoError(t, err)
		if diff := cmp.Diff(g.Row(line-1), row, ctyCmp); diff != "" {
			t.Errorf("line %d mismatch (-want +got):\n%s", line, diff)
		}
	}
}

func TestExtractRow_FirstRow(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "grid.tsv")
	content := "\tbatch\tname\tshuffle\n0\t32\tbaseline\tTrue\n1\t64\tbaseline\tFalse\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	row, err := ExtractRow(path, 1, DefaultSeparator)
	require.NoError(t, err)

	want := map[string]cty.Value{
		"batch":   cty.NumberIntVal(32),
		"name":    cty.StringVal("baseline"),
		"shuffle": cty.True,
	}
	if diff := cmp.Diff(want, row, ctyCmp); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractRow_NonPositiveLine(t *testing.T) {
	t.Parallel()

	for _, line := range []int{0, -1, -42} {
		_, err := ExtractRow("does-not-matter.csv", line, DefaultSeparator)
		var malformed *MalformedParameterRowError
		require.True(t, errors.As(err, &malformed), "line %d: got %v", line, err)
		assert.Equal(t, line, malformed.Line)
	}
}

func TestExtractRow_PastEnd(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "grid.tsv")
	require.NoError(t, os.WriteFile(path, []byte("\ta\n0\t1\n"), 0644))

	_, err := ExtractRow(path, 2, DefaultSeparator)
	require.Error(t, err)
	require.Contains(t, err.Error(), "has 1 rows, row 2 requested")
}

func TestParseSeparator(t *testing.T) {
	t.Parallel()

	valid := map[string]rune{"": '\t', `\t`: '\t', "tab": '\t', "\t": '\t', ",": ',', ";": ';'}
	for in, want := range valid {
		got, err := ParseSeparator(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{",,", `"`, "\n"} {
		_, err := ParseSeparator(in)
		assert.Error(t, err, in)
	}
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	assert.True(t, ParseValue("3").RawEquals(cty.NumberIntVal(3)))
	assert.True(t, ParseValue("0.25").RawEquals(cty.NumberFloatVal(0.25)))
	assert.True(t, ParseValue("true").RawEquals(cty.True))
	assert.True(t, ParseValue("False").RawEquals(cty.False))
	assert.True(t, ParseValue("relu").RawEquals(cty.StringVal("relu")))
	assert.True(t, ParseValue("").RawEquals(cty.StringVal("")))
}

func TestMetadataJSON(t *testing.T) {
	t.Parallel()

	data, err := MetadataJSON(map[string][]cty.Value{
		"lr":    {cty.NumberFloatVal(0.5)},
		"model": {cty.StringVal("mlp"), cty.StringVal("cnn")},
	})
	require.NoError(t, err)

	want := `{
    "lr": [
        0.5
    ],
    "model": [
        "mlp",
        "cnn"
    ]
}
`
	require.Equal(t, want, string(data))
}
