package analyzer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfreport/internal/speedscope"
)

const simpleProfile = `{
  "shared": {"frames": [
    {"name": "main"},
    {"name": "World::run"},
    {"name": "std::sync::Mutex::lock"},
    {},
    {"name": "MutexGuard::drop"}
  ]},
  "profiles": [
    {"type": "sampled", "samples": [[0, 1, 2], [0, 1, 2], [0, 1], [], [0, 1, 1, 3]]},
    {"type": "sampled", "samples": [[0, 4], [0, 1, 2]]}
  ]
}`

func mustParse(t *testing.T, doc string) *speedscope.File {
	t.Helper()
	f, err := speedscope.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return f
}

func TestCountFrames_Example(t *testing.T) {
	f := mustParse(t, `{"shared":{"frames":[{"name":"a"},{"name":"b"}]},"profiles":[{"samples":[[0,1],[1]]}]}`)
	counts := CountFrames(f)

	assert.Equal(t, 2, counts.TotalSamples)
	assert.Equal(t, []Entry{{Index: 1, Count: 2}}, counts.Exclusive.MostCommon(0))
	assert.Equal(t, []Entry{{Index: 1, Count: 2}, {Index: 0, Count: 1}}, counts.Inclusive.MostCommon(0))
	assert.Equal(t, 1, counts.Inclusive.Get(0))
	assert.Equal(t, 0, counts.Exclusive.Get(0))
}

func TestCountFrames_DuplicateFramesCountOnce(t *testing.T) {
	f := mustParse(t, `{"shared":{"frames":[{"name":"a"},{"name":"b"},{"name":"c"},{"name":"d"}]},"profiles":[{"samples":[[2,2,3]]}]}`)
	counts := CountFrames(f)

	assert.Equal(t, 1, counts.Inclusive.Get(2))
	assert.Equal(t, 1, counts.Inclusive.Get(3))
	assert.Equal(t, 1, counts.Exclusive.Get(3))
	assert.Equal(t, 0, counts.Exclusive.Get(2))
}

func TestCountFrames_EmptyStacks(t *testing.T) {
	f := mustParse(t, simpleProfile)
	counts := CountFrames(f)

	assert.Equal(t, 7, counts.TotalSamples)
	assert.Equal(t, 1, counts.EmptySamples)
	assert.Equal(t, counts.TotalSamples-counts.EmptySamples, counts.Exclusive.Total())

	assert.Equal(t, []Entry{
		{Index: 2, Count: 3},
		{Index: 1, Count: 1},
		{Index: 3, Count: 1},
		{Index: 4, Count: 1},
	}, counts.Exclusive.MostCommon(0))

	assert.Equal(t, []Entry{
		{Index: 0, Count: 6},
		{Index: 1, Count: 5},
		{Index: 2, Count: 3},
		{Index: 3, Count: 1},
		{Index: 4, Count: 1},
	}, counts.Inclusive.MostCommon(0))
}

func TestCounterMostCommon_TiesKeepFirstSeenOrder(t *testing.T) {
	c := NewCounter()
	for _, idx := range []int{7, 3, 9, 3, 7, 9, 1} {
		c.Add(idx)
	}

	assert.Equal(t, []Entry{
		{Index: 7, Count: 2},
		{Index: 3, Count: 2},
		{Index: 9, Count: 2},
		{Index: 1, Count: 1},
	}, c.MostCommon(0))
	assert.Equal(t, []Entry{{Index: 7, Count: 2}, {Index: 3, Count: 2}}, c.MostCommon(2))
	assert.Len(t, c.MostCommon(10), 4)
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, 7, c.Total())
}

func TestTopFrames_Truncates(t *testing.T) {
	var frames, samples []string
	for i := 0; i < 25; i++ {
		frames = append(frames, fmt.Sprintf(`{"name":"f%d"}`, i))
		samples = append(samples, fmt.Sprintf(`[%d]`, i))
	}
	f := mustParse(t, fmt.Sprintf(`{"shared":{"frames":[%s]},"profiles":[{"samples":[%s]}]}`,
		strings.Join(frames, ","), strings.Join(samples, ",")))

	counts := CountFrames(f)
	top := FindLeafFrames(f, counts, DefaultTopN)
	require.Len(t, top, DefaultTopN)
	assert.Equal(t, "f0", top[0].Name)
	assert.Equal(t, "f19", top[19].Name)
	assert.InDelta(t, 4.0, top[0].Percent, 1e-9)
}

func TestFindHotspots(t *testing.T) {
	f := mustParse(t, simpleProfile)
	counts := CountFrames(f)

	hot := FindHotspots(f, counts, 2)
	require.Len(t, hot, 2)
	assert.Equal(t, FrameStat{Index: 0, Name: "main", Count: 6, Percent: 100 * 6.0 / 7.0}, hot[0])
	assert.Equal(t, "World::run", hot[1].Name)

	leaves := FindLeafFrames(f, counts, 0)
	require.Len(t, leaves, 4)
	assert.Equal(t, speedscope.UnknownFrameName, leaves[2].Name)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(5, 0))
	assert.Equal(t, 50.0, Percent(1, 2))
	assert.Equal(t, 100.0, Percent(3, 3))
}
