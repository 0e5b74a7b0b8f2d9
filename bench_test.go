package arraymerkle

import (
	"bytes"
	"math/rand"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/commands"
	"github.com/stretchr/testify/require"
)

func randomHashes(n int) []int32 {
	r := rand.New(rand.NewSource(1))
	hashes := make([]int32, n)
	for i := range hashes {
		hashes[i] = int32(r.Uint32())
	}
	return hashes
}

func benchmarkUpdateHash(depth int, b *testing.B) {
	tree := newTestTree(depth)
	hashes := randomHashes(1 << 16)
	b.ReportAllocs()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		h := hashes[n&(len(hashes)-1)]
		tree.UpdateHash(h, h)
	}
}

func BenchmarkUpdateHash8(b *testing.B)  { benchmarkUpdateHash(8, b) }
func BenchmarkUpdateHash16(b *testing.B) { benchmarkUpdateHash(16, b) }
func BenchmarkUpdateHash20(b *testing.B) { benchmarkUpdateHash(20, b) }

func benchmarkUpdateString(cache HashCache, b *testing.B) {
	tree, err := NewWithConfig(Config{Depth: 12, HashCache: cache})
	require.NoError(b, err)
	keys := make([]string, 1024)
	for i := range keys {
		keys[i] = "key-" + strconv.Itoa(i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		k := keys[n&(len(keys)-1)]
		if err := tree.Update(k, k); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUpdateString(b *testing.B)       { benchmarkUpdateString(nil, b) }
func BenchmarkUpdateStringCached(b *testing.B) { benchmarkUpdateString(NewHashCache(2048), b) }

func benchmarkRecalculate(depth int, b *testing.B) {
	tree := newTestTree(depth)
	for _, h := range randomHashes(1 << 16) {
		tree.UpdateHash(h, h)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		tree.Recalculate()
	}
}

func BenchmarkRecalculate8(b *testing.B)  { benchmarkRecalculate(8, b) }
func BenchmarkRecalculate16(b *testing.B) { benchmarkRecalculate(16, b) }
func BenchmarkRecalculate20(b *testing.B) { benchmarkRecalculate(20, b) }

func BenchmarkExerciser(b *testing.B) {
	parameters := gopter.DefaultTestParametersWithSeed(1593228262585360000)
	parameters.MaxSize = 512
	parameters.MinSuccessfulTests = b.N
	properties := gopter.NewProperties(parameters)
	properties.Property("tree exerciser", commands.Prop(treeCommands))
	out := bytes.NewBuffer(nil)
	reporter := gopter.NewFormatedReporter(false, 98, out)
	require.True(b, properties.Run(reporter))
}
