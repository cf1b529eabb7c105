package bench

import (
	"errors"
	"fmt"
	"sort"

	"github.com/MixinNetwork/sigbench/config"
)

var (
	ErrInvalidConfig = errors.New("bench: invalid config")
	ErrMeasurement   = errors.New("bench: measurement failed")
)

type (
	Operation string
	Mode      string
)

const (
	OperationSign        Operation = config.OperationSign
	OperationVerify      Operation = config.OperationVerify
	OperationVerifyBatch Operation = config.OperationVerifyBatch
	OperationAccumulator Operation = config.OperationAccumulator

	ModeInline Mode = config.ModeInline
	ModePooled Mode = config.ModePooled
)

// Cell is one benchmark configuration of the matrix. Total is the number of
// operations the cell is asked to run, split into Total/BatchSize dispatch
// units of BatchSize operations each.
type Cell struct {
	Operation Operation `msgpack:"operation"`
	BatchSize int       `msgpack:"batch_size"`
	Mode      Mode      `msgpack:"mode"`
	Total     int       `msgpack:"total"`
}

func (c Cell) Units() int {
	if c.BatchSize <= 0 {
		return 0
	}
	return c.Total / c.BatchSize
}

// Executed is the operation count actually dispatched, lower than Total when
// the batch size does not divide it.
func (c Cell) Executed() int {
	return c.Units() * c.BatchSize
}

// String is the cell token of the report lines, the mode is not part of it.
func (c Cell) String() string {
	return fmt.Sprintf("%s(%d)", c.Operation, c.BatchSize)
}

func (c Cell) Label() string {
	return fmt.Sprintf("%s %s", c.Mode, c)
}

// Matrix lists the cells in traversal order: mode, then operation in the
// configured order, then batch size ascending.
func Matrix(custom *config.Custom) ([]Cell, error) {
	if err := custom.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	sizes := append([]int{}, custom.Bench.BatchSizes...)
	sort.Ints(sizes)

	var cells []Cell
	for _, m := range custom.Bench.Modes {
		mode := Mode(m)
		total := custom.Bench.InlineOperationCount
		if mode == ModePooled {
			total = custom.Bench.PooledOperationCount
		}
		for _, op := range custom.Bench.Operations {
			for _, size := range sizes {
				cell := Cell{Operation: Operation(op), BatchSize: size, Mode: mode, Total: total}
				if cell.Units() == 0 {
					return nil, fmt.Errorf("%w: %s total %d below batch size", ErrInvalidConfig, cell.Label(), total)
				}
				cells = append(cells, cell)
			}
		}
	}
	return cells, nil
}
