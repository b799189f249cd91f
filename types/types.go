package types

import (
	"fmt"
	"strings"

	"github.com/goccy/tablenum/numbers"
)

type Table struct {
	ID      string    `yaml:"id" json:"id" validate:"required"`
	Columns []*Column `yaml:"columns" json:"columns" validate:"required,dive"`
	Rows    []Row     `yaml:"rows" json:"rows"`
}

type Column struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	Type Type   `yaml:"type" json:"type" validate:"type"`
}

type Row []Token

func NewTable(id string, columns ...*Column) *Table {
	return &Table{ID: id, Columns: columns}
}

func NewColumn(name string, typ Type) *Column {
	return &Column{Name: name, Type: typ}
}

// AddRow appends a row built from raw cell texts.
func (t *Table) AddRow(cells ...string) *Table {
	row := make(Row, 0, len(cells))
	for _, cell := range cells {
		row = append(row, Token(cell))
	}
	t.Rows = append(t.Rows, row)
	return t
}

func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, column := range t.Columns {
		names = append(names, column.Name)
	}
	return names
}

// Parse converts a cell of this column. Unsuffixed numbers take the column type.
func (c *Column) Parse(token Token) (interface{}, error) {
	return ParseScalar(string(token), c.Type)
}

// Type pins the number kind of the cells of a column.
// The empty type keeps the kind chosen by the literal itself.
type Type string

const (
	AUTO       Type = ""
	INT8       Type = "INT8"
	BYTE       Type = "BYTE"
	TINYINT    Type = "TINYINT"
	INT16      Type = "INT16"
	SHORT      Type = "SHORT"
	SMALLINT   Type = "SMALLINT"
	INT32      Type = "INT32"
	INT        Type = "INT"
	INTEGER    Type = "INTEGER"
	INT64      Type = "INT64"
	LONG       Type = "LONG"
	BIGINT     Type = "BIGINT"
	BIGINTEGER Type = "BIGINTEGER"
	FLOAT32    Type = "FLOAT32"
	FLOAT      Type = "FLOAT"
	FLOAT64    Type = "FLOAT64"
	DOUBLE     Type = "DOUBLE"
	BIGDECIMAL Type = "BIGDECIMAL"
	DECIMAL    Type = "DECIMAL"
	NUMERIC    Type = "NUMERIC"
	BIGNUMERIC Type = "BIGNUMERIC"
)

func (t Type) Kind() (numbers.Kind, error) {
	switch Type(strings.ToUpper(string(t))) {
	case AUTO:
		return numbers.Invalid, nil
	case INT8:
		return numbers.Int8, nil
	case BYTE:
		return numbers.Int8, nil
	case TINYINT:
		return numbers.Int8, nil
	case INT16:
		return numbers.Int16, nil
	case SHORT:
		return numbers.Int16, nil
	case SMALLINT:
		return numbers.Int16, nil
	case INT32:
		return numbers.Int32, nil
	case INT:
		return numbers.Int32, nil
	case INTEGER:
		return numbers.Int32, nil
	case INT64:
		return numbers.Int64, nil
	case LONG:
		return numbers.Int64, nil
	case BIGINT:
		return numbers.Int64, nil
	case BIGINTEGER:
		return numbers.BigInt, nil
	case FLOAT32:
		return numbers.Float32, nil
	case FLOAT:
		return numbers.Float32, nil
	case FLOAT64:
		return numbers.Float64, nil
	case DOUBLE:
		return numbers.Float64, nil
	case BIGDECIMAL:
		return numbers.BigDecimal, nil
	case DECIMAL:
		return numbers.BigDecimal, nil
	case NUMERIC:
		return numbers.BigDecimal, nil
	case BIGNUMERIC:
		return numbers.BigDecimal, nil
	}
	return numbers.Invalid, fmt.Errorf("unsupported column type %q", string(t))
}
