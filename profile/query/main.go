// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query mem.prof

package main

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/edwinsyarief/lazyquery"
)

type counter struct {
	value int64
}

func (c *counter) Deref() *int64    { return &c.value }
func (c *counter) DerefMut() *int64 { return &c.value }

type weight struct {
	value int64
}

func (w *weight) Deref() *int64 { return &w.value }

func main() {
	// CPU Profiling
	f, _ := os.Create("cpu.prof")
	_ = pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	count := 50
	iters := 10000
	entities := 100000
	run(count, iters, entities)

	// Memory Profiling
	memFile, _ := os.Create("mem.prof")
	defer memFile.Close()
	runtime.GC() // Trigger garbage collection
	_ = pprof.WriteHeapProfile(memFile)
}

func run(rounds, iters, numEntities int) {
	for i := 0; i < rounds; i++ {
		w := lazyquery.NewWorld(numEntities)
		batch := lazyquery.NewBuilder2[counter, weight](&w)
		batch.NewEntities(numEntities)

		view := lazyquery.AsDerefMut[counter, int64, *counter]()
		mut := lazyquery.NewQuery(&w, lazyquery.Fetch[lazyquery.MutRef[int64]](view))
		sum := lazyquery.NewQuery(&w, lazyquery.AsDerefCopied[weight, int64, *weight]())

		for j := 0; j < iters; j++ {
			var total int64
			sum.Reset()
			for sum.Next() {
				total += sum.Item()
			}
			mut.Reset()
			for mut.Next() {
				mut.Item().Update(func(v *int64) { *v += total })
			}
		}
	}
}
