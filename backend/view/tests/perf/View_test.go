//go:build performance
// +build performance

package perf

import (
	"nebula/backend/feed"
	z "nebula/backend/internal/testing"
	"nebula/backend/types"
	"nebula/backend/view"
	"nebula/backend/view/impl"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var viewFac view.Factory[string] = impl.NewView[string]

// This test executes the exact same function as the BenchmarkApply below.
// Its goal is mainly to raise any error that could occur during its execution as the benchmark hides them.
func Test_View_Benchmark_Correctness(t *testing.T) {
	runApply(t, 1, 1000, 100)
}

// Run BenchmarkApply and compare the speed to reference assessments.
func Test_View_BenchmarkApply(t *testing.T) {
	res := testing.Benchmark(BenchmarkApply)

	assessSpeed(t, res, []speedThresholds{
		{"speed great", 100 * time.Millisecond},
		{"speed ok", 1 * time.Second},
		{"speed passable", 5 * time.Second},
	})
}

// Apply opN random element edits to a grouped view of initial items.
func BenchmarkApply(b *testing.B) {
	runApply(b, b.N, 1000, 100)
}

func runApply(t require.TestingT, rounds, initial, opN int) {
	for r := 0; r < rounds; r++ {
		classify, err := feed.GroupByName(feed.GroupByFirstLetter)
		require.NoError(t, err)

		v := z.NewStringView(t, viewFac, z.WithGroupBy(classify))
		generator := feed.NewGenerator(uint64(r)+1, initial)

		v.MustApply(generator.Next(types.InitialMode, nil))

		rnd := rand.New(rand.NewSource(uint64(r) + 1))
		for i := 0; i < opN; i++ {
			mode := types.ListMode
			if rnd.Intn(2) == 0 {
				mode = types.ElementMode
			}

			_, err := v.Apply(generator.Next(mode, v.Items()))
			require.NoError(t, err)

			_, err = v.Coordinates(mode)
			require.NoError(t, err)
		}

		v.RequireSorted()
	}
}

type speedThresholds struct {
	name    string
	maxTime time.Duration
}

func assessSpeed(t *testing.T, res testing.BenchmarkResult, thresholds []speedThresholds) {
	perOp := time.Duration(res.NsPerOp())
	t.Logf("%s per round", perOp)

	for _, threshold := range thresholds {
		t.Run(threshold.name, func(t *testing.T) {
			require.LessOrEqual(t, perOp, threshold.maxTime)
		})
	}
}
