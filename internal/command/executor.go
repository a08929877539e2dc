package command

import (
	"context"
	"fmt"

	"github.com/ASHISH26940/mdsdb/internal/money"
	"github.com/hashicorp/go-hclog"
	"github.com/shopspring/decimal"
)

// Index is the interface the Executor needs from the storage layer.
type Index interface {
	Insert(id int64, price money.Money, tags []int64) bool
	Find(id int64) money.Money
	Delete(id int64) int64
	RemoveTags(id int64, tags []int64) int64
	PriceHike(low, high int64, percent decimal.Decimal) money.Money
	FindMinPrice(tag int64) money.Money
	FindMaxPrice(tag int64) money.Money
	FindPriceRange(tag int64, low, high money.Money) int
	Len() int
	TagCount() int
}

// Executor applies Commands to an Index and keeps a running checksum of
// their results. It is not safe for concurrent use.
type Executor struct {
	index    Index
	logger   hclog.Logger
	metrics  *Metrics
	checksum decimal.Decimal
	applied  int
}

// NewExecutor creates an Executor. metrics may be nil.
func NewExecutor(index Index, logger hclog.Logger, metrics *Metrics) *Executor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Executor{
		index:    index,
		logger:   logger,
		metrics:  metrics,
		checksum: decimal.Zero,
	}
}

// Apply runs cmd against the index. Successful results are added to the
// checksum; a command that fails to parse leaves the index untouched.
func (e *Executor) Apply(cmd Command) (Result, error) {
	res, err := e.dispatch(cmd)
	if e.metrics != nil {
		op := cmd.Op
		if err != nil && res.Op == "" {
			op = "unknown"
		}
		e.metrics.observe(op, err, e.index.Len(), e.index.TagCount())
	}
	if err != nil {
		e.logger.Warn("command rejected", "op", cmd.Op, "error", err)
		return Result{}, err
	}

	e.applied++
	e.checksum = e.checksum.Add(res.Amount)
	e.logger.Debug("applied command", "op", cmd.Op, "result", res.Value)
	return res, nil
}

func (e *Executor) dispatch(cmd Command) (Result, error) {
	switch cmd.Op {
	case OpInsert:
		price, err := parseMoney("price", cmd.Price)
		if err != nil {
			return Result{Op: cmd.Op}, err
		}
		var created int64
		if e.index.Insert(cmd.ID, price, cmd.Tags) {
			created = 1
		}
		return intResult(cmd.Op, created), nil
	case OpFind:
		return moneyResult(cmd.Op, e.index.Find(cmd.ID)), nil
	case OpDelete:
		return intResult(cmd.Op, e.index.Delete(cmd.ID)), nil
	case OpFindMinPrice:
		return moneyResult(cmd.Op, e.index.FindMinPrice(cmd.Tag)), nil
	case OpFindMaxPrice:
		return moneyResult(cmd.Op, e.index.FindMaxPrice(cmd.Tag)), nil
	case OpFindPriceRange:
		low, err := parseMoney("low", cmd.Low)
		if err != nil {
			return Result{Op: cmd.Op}, err
		}
		high, err := parseMoney("high", cmd.High)
		if err != nil {
			return Result{Op: cmd.Op}, err
		}
		return intResult(cmd.Op, int64(e.index.FindPriceRange(cmd.Tag, low, high))), nil
	case OpPriceHike:
		rate, err := decimal.NewFromString(cmd.Rate)
		if err != nil {
			return Result{Op: cmd.Op}, fmt.Errorf("rate: %w", err)
		}
		return moneyResult(cmd.Op, e.index.PriceHike(cmd.LowID, cmd.HighID, rate)), nil
	case OpRemoveNames:
		return intResult(cmd.Op, e.index.RemoveTags(cmd.ID, cmd.Tags)), nil
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnknownOp, cmd.Op)
}

// Run applies cmds in order and returns the results of those applied. It
// stops at the first rejected command, or when ctx is cancelled between
// commands; the commands before it stay applied.
func (e *Executor) Run(ctx context.Context, cmds []Command) ([]Result, error) {
	results := make([]Result, 0, len(cmds))
	for i, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := e.Apply(cmd)
		if err != nil {
			return results, fmt.Errorf("command %d (%s): %w", i+1, cmd.Op, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Checksum is the exact sum of every successful result so far.
func (e *Executor) Checksum() decimal.Decimal { return e.checksum }

// Applied is the number of commands applied successfully.
func (e *Executor) Applied() int { return e.applied }
