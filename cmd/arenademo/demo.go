package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	arena "github.com/pavanmanishd/slotarena"
	"github.com/pavanmanishd/slotarena/ordmap"
	"github.com/pavanmanishd/slotarena/slist"
)

func factorial(n uint64) uint64 {
	f := uint64(1)
	for i := uint64(2); i <= n; i++ {
		f *= i
	}
	return f
}

func run(w io.Writer, logger log.Logger, cfg config) error {
	if cfg.count < 0 {
		return errors.Errorf("count must be >= 0, got %d", cfg.count)
	}
	keys := lo.Map(lo.Range(cfg.count), func(i, _ int) uint64 { return uint64(i) })
	strategy := arena.Fixed(cfg.capacity, arena.WithLogger(logger))

	fmt.Fprintf(w, "\n=== Testing builtin map ===\n")
	builtin := make(map[uint64]uint64, len(keys))
	for _, k := range keys {
		builtin[k] = factorial(k)
	}
	fmt.Fprintf(w, "\nPrinting builtin map\n")
	sorted := lo.Keys(builtin)
	slices.Sort(sorted)
	for _, k := range sorted {
		fmt.Fprintf(w, "%d %d; ", k, builtin[k])
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\n=== Testing ordered map with arena allocator ===\n")
	pairs, err := arena.Make[ordmap.Pair[uint64, uint64]](strategy.With(arena.WithName("ordmap")))
	if err != nil {
		return err
	}
	m, err := ordmap.New(pairs)
	if err != nil {
		return err
	}
	defer m.Close()
	for _, k := range keys {
		if err := m.Put(k, factorial(k)); err != nil {
			return errors.Wrapf(err, "insert key %d", k)
		}
	}
	fmt.Fprintf(w, "\nPrinting ordered map with arena allocator\n")
	for k, v := range m.All() {
		fmt.Fprintf(w, "%d %d; ", k, v)
	}
	fmt.Fprintln(w)
	report(logger, "ordmap", m.Stats)

	fmt.Fprintf(w, "\n=== Testing list ===\n")
	heapList := slist.NewDefault[int]()
	defer heapList.Close()
	if err := fill(heapList, cfg.count); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nPrinting list with heap allocator\n")
	printList(w, heapList)

	fmt.Fprintf(w, "\n=== Testing list with arena allocator ===\n")
	ints, err := arena.Make[int](strategy.With(arena.WithName("slist")))
	if err != nil {
		return err
	}
	arenaList, err := slist.New(ints)
	if err != nil {
		return err
	}
	defer arenaList.Close()
	if err := fill(arenaList, cfg.count); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nPrinting list with arena allocator\n")
	printList(w, arenaList)
	report(logger, "slist", arenaList.Stats)
	return nil
}

func fill(l *slist.List[int], n int) error {
	for i := range n {
		if err := l.Append(i); err != nil {
			return errors.Wrapf(err, "append %d", i)
		}
	}
	return nil
}

func printList(w io.Writer, l *slist.List[int]) {
	for v := range l.All() {
		fmt.Fprintf(w, "%d ", v)
	}
	fmt.Fprintln(w)
}

func report(logger log.Logger, container string, stats func() (arena.Stats, bool)) {
	st, ok := stats()
	if !ok {
		return
	}
	level.Info(logger).Log(
		"msg", "arena usage",
		"container", container,
		"used", st.Used,
		"slots", st.Slots,
		"in_use", humanize.IBytes(uint64(st.SizeInUse)),
		"reserved", humanize.IBytes(uint64(st.Reserved)),
	)
}
