package tabledata

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goccy/tablenum/internal/logger"
	"github.com/goccy/tablenum/types"
)

// Table is a table whose cells have been converted to scalar values.
type Table struct {
	ID      string          `json:"id"`
	Columns []*types.Column `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

type Repository struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

func NewRepository() *Repository {
	return &Repository{
		tables: map[string]*Table{},
	}
}

// AddTable decodes every cell of table and stores the result.
// Nothing is stored when a cell cannot be decoded.
func (r *Repository) AddTable(ctx context.Context, table *types.Table) (*Table, error) {
	r.mu.RLock()
	_, exists := r.tables[table.ID]
	r.mu.RUnlock()
	if exists {
		return nil, ErrorWithMessage(Duplicate, fmt.Sprintf("table %s is already defined", table.ID))
	}
	decoded, err := DecodeTable(ctx, table)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tables[table.ID]; exists {
		return nil, ErrorWithMessage(Duplicate, fmt.Sprintf("table %s is already defined", table.ID))
	}
	r.tables[table.ID] = decoded
	logger.Logger(ctx).Debug(
		"add table",
		zap.String("tableId", table.ID),
		zap.Int("rows", len(decoded.Rows)),
	)
	return decoded, nil
}

// FindTable returns nil when no table is registered for id.
func (r *Repository) FindTable(id string) *Table {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tables[id]
}

func (r *Repository) TableIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.tables))
	for id := range r.tables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Repository) DeleteTable(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tables[id]; !exists {
		return ErrorWithMessage(NotFound, fmt.Sprintf("table %s is not found", id))
	}
	delete(r.tables, id)
	logger.Logger(ctx).Debug("delete table", zap.String("tableId", id))
	return nil
}

// DecodeTable converts the rows of table concurrently. The first failing cell
// cancels the remaining rows and is reported with its position.
func DecodeTable(ctx context.Context, table *types.Table) (*Table, error) {
	rows := make([][]interface{}, len(table.Rows))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for rowIdx, row := range table.Rows {
		rowIdx := rowIdx
		row := row
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			decoded, err := decodeRow(table, rowIdx, row)
			if err != nil {
				return err
			}
			rows[rowIdx] = decoded
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &Table{
		ID:      table.ID,
		Columns: table.Columns,
		Rows:    rows,
	}, nil
}

func decodeRow(table *types.Table, rowIdx int, row types.Row) ([]interface{}, error) {
	if len(row) != len(table.Columns) {
		return nil, ErrorWithMessage(
			InvalidCell,
			fmt.Sprintf(
				"table %s row %d has %d cells but %d columns are defined",
				table.ID, rowIdx, len(row), len(table.Columns),
			),
		)
	}
	values := make([]interface{}, 0, len(row))
	for colIdx, token := range row {
		column := table.Columns[colIdx]
		v, err := column.Parse(token)
		if err != nil {
			return nil, ErrorWithCause(
				InvalidCell,
				fmt.Sprintf("table %s row %d column %s: failed to decode %q", table.ID, rowIdx, column.Name, string(token)),
				err,
			)
		}
		values = append(values, v)
	}
	return values, nil
}
