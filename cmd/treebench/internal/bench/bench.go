package bench

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/jrhy/arraymerkle"
	"go.uber.org/zap"
)

// Report holds the outcome of a run.
type Report struct {
	Depth           int
	Nodes           int
	Footprint       int
	Entries         int
	UpdateTook      time.Duration
	RecalculateTook time.Duration
	Root            int32
}

// Entries generates the pseudo-random key hashes a run with the given seed
// applies; each entry is used as both key and value hash.
func Entries(seed int64, n int) []int32 {
	r := rand.New(rand.NewSource(seed))
	entries := make([]int32, n)
	for i := range entries {
		entries[i] = int32(r.Uint32())
	}
	return entries
}

// Run builds a tree, applies conf.Entries updates, recalculates it and
// writes a summary to out.
func Run(conf *Config, logger *zap.Logger, out io.Writer) (*Report, error) {
	tree, err := arraymerkle.NewWithConfig(arraymerkle.Config{
		Depth:  conf.Depth,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("new tree: %w", err)
	}
	entries := Entries(conf.Seed, conf.Entries)
	logger.Info("generated entries", zap.Int("entries", len(entries)), zap.Int64("seed", conf.Seed))

	start := time.Now()
	for _, e := range entries {
		tree.UpdateHash(e, e)
	}
	updateTook := time.Since(start)

	start = time.Now()
	tree.Recalculate()
	recalculateTook := time.Since(start)

	report := &Report{
		Depth:           tree.Depth(),
		Nodes:           tree.NodeCount(),
		Footprint:       tree.Footprint(),
		Entries:         len(entries),
		UpdateTook:      updateTook,
		RecalculateTook: recalculateTook,
		Root:            tree.Root(),
	}
	logger.Info("run complete",
		zap.Int("depth", report.Depth),
		zap.Duration("update", updateTook),
		zap.Duration("recalculate", recalculateTook),
		zap.Int32("root", report.Root))

	if err := report.Write(out); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	if conf.Dump {
		if err := tree.Dump(out); err != nil {
			return nil, fmt.Errorf("dump: %w", err)
		}
	}
	return report, nil
}

// Write prints the report in a human-readable form.
func (r *Report) Write(w io.Writer) error {
	perEntry := time.Duration(0)
	if r.Entries > 0 {
		perEntry = r.UpdateTook / time.Duration(r.Entries)
	}
	_, err := fmt.Fprintf(w,
		"Depth: %d\nNodes: %d\nMemory footprint: %d bytes\n"+
			"Adding %d entries took %v\nAverage overhead per entry: %v\n"+
			"Recalculating the tree took %v\nRoot digest: %d\n",
		r.Depth, r.Nodes, r.Footprint,
		r.Entries, r.UpdateTook, perEntry,
		r.RecalculateTook, r.Root)
	return err
}
