package option

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOptions() []Option {
	return []Option{
		{Value: "A", Label: "Alpha"},
		{Value: "B", Label: "Beta"},
		{Value: "C", Label: "Gamma"},
	}
}

func TestFilterEmptyQueryIsIdentity(t *testing.T) {
	opts := sampleOptions()
	got := Filter(opts, "")
	require.Len(t, got, 3)
	assert.Same(t, &opts[0], &got[0], "empty query must return the original slice")
}

func TestFilterMatchesSubstringIgnoringCase(t *testing.T) {
	opts := sampleOptions()
	assert.Equal(t, opts, Filter(opts, "a"))
	assert.Equal(t, opts, Filter(opts, "A"))
	assert.Equal(t, []Option{opts[1]}, Filter(opts, "ET"))
	assert.Empty(t, Filter(opts, "zz"))
}

func TestFilterUsesSearchTextWhenPresent(t *testing.T) {
	opts := []Option{
		{Value: "12", Label: "#12 - ABC-123 (Rosa Diaz)", SearchText: "12 ABC-123 Rosa Diaz 44556677"},
		{Value: "13", Label: "#13 - XYZ-987 (Luis Vega)"},
	}
	got := Filter(opts, "4455")
	require.Len(t, got, 1)
	assert.Equal(t, "12", got[0].Value)

	// Label text is ignored once search text is supplied.
	assert.Empty(t, Filter([]Option{{Value: "x", Label: "visible", SearchText: "hidden"}}, "visible"))
}

func TestFilterKeepsOriginalOrderNotMatchQuality(t *testing.T) {
	opts := []Option{
		{Value: "1", Label: "Xbeta"},
		{Value: "2", Label: "beta"},
		{Value: "3", Label: "alphabet"},
	}
	got := Filter(opts, "bet")
	require.Len(t, got, 3)
	for i, want := range []string{"1", "2", "3"} {
		assert.Equal(t, want, got[i].Value)
	}
}

func TestFilterDoesNotTrimQuery(t *testing.T) {
	opts := []Option{{Value: "1", Label: "red car"}, {Value: "2", Label: "redcar"}}
	got := Filter(opts, "red ")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].Value)
}

func TestFilterAgreesWithReferencePredicate(t *testing.T) {
	opts := make([]Option, 0, 40)
	for i := 0; i < 40; i++ {
		opts = append(opts, Option{Value: fmt.Sprint(i), Label: fmt.Sprintf("Vehicle %02d %s", i, strings.Repeat("Ab", i%4))})
	}
	for _, q := range []string{"", "1", "AB", "abab", "vehicle 3", "nothing", "e 0"} {
		got := Filter(opts, q)
		var want []Option
		for _, o := range opts {
			if q == "" || strings.Contains(strings.ToLower(o.SearchKey()), strings.ToLower(q)) {
				want = append(want, o)
			}
		}
		assert.Equal(t, len(want), len(got), "query %q", q)
		assert.Equal(t, len(want), Count(opts, q), "count for query %q", q)
		for i := range want {
			assert.Equal(t, want[i], got[i], "query %q index %d", q, i)
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	opts := sampleOptions()
	before := Clone(opts)
	_ = Filter(opts, "a")
	_ = Filter(opts, "b")
	assert.Equal(t, before, opts)
}

func TestFind(t *testing.T) {
	opts := sampleOptions()
	opt, ok := Find(opts, "B")
	require.True(t, ok)
	assert.Equal(t, "Beta", opt.Label)

	_, ok = Find(opts, "missing")
	assert.False(t, ok)

	_, ok = Find([]Option{{Value: "", Label: "blank"}}, "")
	assert.False(t, ok, "empty value is the no-selection sentinel")
}

func TestFindReturnsFirstDuplicate(t *testing.T) {
	opts := []Option{{Value: "d", Label: "first"}, {Value: "d", Label: "second"}}
	opt, ok := Find(opts, "d")
	require.True(t, ok)
	assert.Equal(t, "first", opt.Label)
}

func TestChildrenOfAndClone(t *testing.T) {
	opts := []Option{
		{Value: "c1", Label: "one", Parent: "v1"},
		{Value: "c2", Label: "two", Parent: "v2"},
		{Value: "c3", Label: "three", Parent: "v1"},
	}
	children := ChildrenOf(opts, "v1")
	require.Len(t, children, 2)
	assert.Equal(t, "c1", children[0].Value)
	assert.Equal(t, "c3", children[1].Value)
	assert.Empty(t, ChildrenOf(opts, "none"))

	clone := Clone(opts)
	clone[0].Label = "changed"
	assert.Equal(t, "one", opts[0].Label)
	assert.Nil(t, Clone(nil))
}
