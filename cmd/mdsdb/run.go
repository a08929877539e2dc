package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ASHISH26940/mdsdb/internal/command"
	"github.com/ASHISH26940/mdsdb/internal/config"
	"github.com/ASHISH26940/mdsdb/internal/journal"
	"github.com/ASHISH26940/mdsdb/internal/store"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// resultRecord is what gets written to the output journal per operation.
type resultRecord struct {
	RunID string `json:"run_id"`
	Seq   int    `json:"seq"`
	Op    string `json:"op"`
	Value string `json:"value"`
}

// runScript replays the script at path into a fresh store and prints the
// checksum of all results to stdout.
func runScript(ctx context.Context, cfg *config.Config, path string, stdout, stderr io.Writer) error {
	runID := uuid.NewString()
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "mdsdb",
		Level:  hclog.LevelFromString(cfg.LogLevel),
		Output: stderr,
	}).With("run_id", runID)

	st := store.NewStore()
	reg := prometheus.NewRegistry()
	ex := command.NewExecutor(st, logger.Named("executor"), command.NewMetrics(reg))

	logger.Info("replaying script", "path", path)
	var cmds []command.Command
	err := journal.ReplayFile(ctx, path, func(line []byte) error {
		var cmd command.Command
		if err := json.Unmarshal(line, &cmd); err != nil {
			return err
		}
		cmds = append(cmds, cmd)
		return nil
	})
	if err != nil {
		return err
	}

	results, err := ex.Run(ctx, cmds)
	if cfg.Output != "" {
		if werr := writeResults(cfg.Output, runID, results); werr != nil && err == nil {
			err = werr
		}
	}
	if err != nil {
		return err
	}
	logger.Info("script complete", "applied", ex.Applied(), "items", st.Len(), "tags", st.TagCount())

	if cfg.Verify {
		if err := st.CheckConsistency(); err != nil {
			return fmt.Errorf("index inconsistent: %w", err)
		}
		logger.Info("tag index consistent")
	}

	fmt.Fprintln(stdout, ex.Checksum().StringFixed(2))

	if cfg.Metrics {
		return writeMetrics(reg, stdout)
	}
	return nil
}

// writeResults records one line per applied command, in order.
func writeResults(path, runID string, results []command.Result) error {
	out, err := journal.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	for i, res := range results {
		if err := out.WriteRecord(resultRecord{RunID: runID, Seq: i + 1, Op: res.Op, Value: res.Value}); err != nil {
			out.Close()
			return err
		}
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}

func writeMetrics(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
