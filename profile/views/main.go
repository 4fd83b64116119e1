// Profiling:
// go build ./profile/views
// go tool pprof -http=":8000" -nodefraction=0.001 ./views mem.pprof

package main

import (
	"github.com/edwinsyarief/lazyquery"
	"github.com/pkg/profile"
)

type score struct {
	value int32
}

func (s *score) Deref() *int32 { return &s.value }
func (score) Default() score   { return score{value: 100} }
func (s score) Clone() score   { return s }

type tag struct {
	id int32
}

func main() {
	count := 50
	iters := 10000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for i := 0; i < rounds; i++ {
		w := lazyquery.NewWorld(numEntities * 2)
		scored := lazyquery.NewBuilder[score](&w)
		tagged := lazyquery.NewBuilder[tag](&w)
		scored.NewEntities(numEntities)
		tagged.NewEntities(numEntities)

		query := lazyquery.NewQuery(&w, lazyquery.AsDerefCopiedOfClonedOrDefault[score, int32, *score]())

		for j := 0; j < iters; j++ {
			var total int64
			query.Reset()
			for query.Next() {
				total += int64(query.Item())
			}
			_ = total
		}
	}
}
