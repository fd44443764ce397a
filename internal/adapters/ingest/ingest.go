// Package ingest streams CSV dataset files row by row into typed callbacks.
//
// The first line of every file is a header naming the columns. Rows are
// decoded by column name, so column order and extra columns do not matter.
// Any failure aborts the whole pass: the first error is returned wrapped
// with the file and line it came from.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/okian/sofirank/pkg/metrics"
)

// ctxCheckEvery bounds how many rows are read between cancellation checks.
const ctxCheckEvery = 4096

// Row is one decoded CSV record with access by column name.
type Row struct {
	file   string
	line   int
	header map[string]int
	fields []string
}

// Line returns the 1-based line number of the row.
func (r Row) Line() int { return r.line }

// String returns the raw value of column.
func (r Row) String(column string) (string, error) {
	i, ok := r.header[column]
	if !ok || i >= len(r.fields) {
		return "", fmt.Errorf("%w: missing column %q", ErrMalformedRow, column)
	}
	return r.fields[i], nil
}

// Uint32 parses column as an unsigned 32-bit integer.
func (r Row) Uint32(column string) (uint32, error) {
	s, err := r.String(column)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q: %w", ErrMalformedRow, column, err)
	}
	return uint32(v), nil
}

// Float64 parses column as a float.
func (r Row) Float64(column string) (float64, error) {
	s, err := r.String(column)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q: %w", ErrMalformedRow, column, err)
	}
	return v, nil
}

// Stream opens path, decodes every data row with decode and hands the
// result to fn. It returns the number of rows delivered.
func Stream[T any](ctx context.Context, path string, decode func(Row) (T, error), fn func(T) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	n, err := stream(ctx, f, path, label, decode, fn)
	if err != nil {
		metrics.RecordIngestError(label)
	}
	return n, err
}

// Read is Stream over an already open reader; name is used in errors.
func Read[T any](ctx context.Context, r io.Reader, name string, decode func(Row) (T, error), fn func(T) error) (int, error) {
	return stream(ctx, r, name, name, decode, fn)
}

func stream[T any](ctx context.Context, r io.Reader, name, label string, decode func(Row) (T, error), fn func(T) error) (int, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w: %s: missing header", ErrMalformedRow, name)
		}
		return 0, fmt.Errorf("%w: %s: header: %w", ErrMalformedRow, name, err)
	}
	header := make(map[string]int, len(head))
	for i, col := range head {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		header[strings.TrimSpace(col)] = i
	}

	rows := 0
	for {
		if rows%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return rows, err
			}
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, fmt.Errorf("%w: %s: %w", ErrMalformedRow, name, err)
		}

		line, _ := cr.FieldPos(0)
		row := Row{file: name, line: line, header: header, fields: rec}

		v, err := decode(row)
		if err != nil {
			return rows, fmt.Errorf("%s:%d: %w", name, line, err)
		}
		if err := fn(v); err != nil {
			return rows, fmt.Errorf("%s:%d: %w", name, line, err)
		}
		rows++
		metrics.RecordIngestRow(label)
	}
}
