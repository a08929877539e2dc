// Package command defines the operations external callers submit to the
// index and the Executor that applies them.
package command

import (
	"errors"
	"fmt"

	"github.com/ASHISH26940/mdsdb/internal/money"
	"github.com/shopspring/decimal"
)

// Operation names accepted in Command.Op.
const (
	OpInsert         = "insert"
	OpFind           = "find"
	OpDelete         = "delete"
	OpFindMinPrice   = "find_min_price"
	OpFindMaxPrice   = "find_max_price"
	OpFindPriceRange = "find_price_range"
	OpPriceHike      = "price_hike"
	OpRemoveNames    = "remove_names"
)

// ErrUnknownOp is returned for a Command whose Op is not recognised.
var ErrUnknownOp = errors.New("unknown operation")

// Command is a single operation against the index, as read from a script.
// Money fields are strings so that they are parsed exactly.
type Command struct {
	Op     string  `json:"op"`
	ID     int64   `json:"id,omitempty"`
	Price  string  `json:"price,omitempty"`
	Tags   []int64 `json:"tags,omitempty"`
	Tag    int64   `json:"tag,omitempty"`
	Low    string  `json:"low,omitempty"`  // find_price_range lower price
	High   string  `json:"high,omitempty"` // find_price_range upper price
	LowID  int64   `json:"low_id,omitempty"`
	HighID int64   `json:"high_id,omitempty"`
	Rate   string  `json:"rate,omitempty"` // price_hike percent, e.g. "10" or "2.5"
}

// Result is the outcome of one applied Command. Amount is its contribution
// to the running checksum.
type Result struct {
	Op     string          `json:"op"`
	Value  string          `json:"value"`
	Amount decimal.Decimal `json:"-"`
}

func moneyResult(op string, m money.Money) Result {
	return Result{Op: op, Value: m.String(), Amount: m.Decimal()}
}

func intResult(op string, n int64) Result {
	return Result{Op: op, Value: fmt.Sprint(n), Amount: decimal.NewFromInt(n)}
}

func parseMoney(field, s string) (money.Money, error) {
	m, err := money.Parse(s)
	if err != nil {
		return money.Zero, fmt.Errorf("%s: %w", field, err)
	}
	return m, nil
}
