package main

import (
	"flag"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/rawbytedev/containers"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	config := flag.String("config", "", "allocator options (yaml)")
	memprofile := flag.String("memprofile", "", "write a heap profile to this file")
	rounds := flag.Int("rounds", 10000, "resize rounds")
	flag.Parse()

	logrus.SetOutput(os.Stdout)
	opts := containers.Options{}
	if *config != "" {
		var err error
		if opts, err = containers.LoadOptionsFile(*config); err != nil {
			logrus.Fatal(err)
		}
	}
	pool := containers.NewPool[int](opts)

	vector, err := containers.Make[int](pool, 3, containers.Uninitialized[int]())
	if err != nil {
		logrus.Fatal(err)
	}
	defer vector.Release()
	vector.View().CopyFrom(containers.NewReadOnly([]int{5, 7, 12}))
	logrus.Infof("start %v", &vector)

	steps := []struct {
		n int
		p containers.Policy[int]
	}{
		{5, containers.Initialized(24)},
		{4, containers.Uninitialized[int]()},
		{2, containers.Initialized(127)},
		{4, containers.NonPreservingInitialized(87)},
	}
	for _, s := range steps {
		if err := vector.ResizeWith(s.n, s.p); err != nil {
			logrus.Fatal(err)
		}
		logrus.WithField("policy", s.p).Infof("resize(%d) -> %v", s.n, &vector)
	}

	if *memprofile != "" {
		runtime.MemProfileRate = 1
	}
	for i := 0; i < *rounds; i++ {
		if err := vector.ResizeFill(4+i%8, i); err != nil {
			logrus.Fatal(err)
		}
	}

	// readers share the final block; nothing resizes it while they run
	ro := vector.ReadOnly()
	var g errgroup.Group
	sums := make([]int, 4)
	for w := range sums {
		g.Go(func() error {
			for v := range ro.Values() {
				sums[w] += v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logrus.Fatal(err)
	}
	logrus.WithFields(logrus.Fields{
		"len":    ro.Len(),
		"sum":    sums[0],
		"allocs": pool.Stats().Allocs,
		"reused": pool.Stats().Recycled,
		"parked": pool.Parked(),
	}).Info("done")

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			logrus.Fatal(err)
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			logrus.Fatal(err)
		}
	}
}
