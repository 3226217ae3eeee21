package manager

import (
	"context"
	"errors"
	"fmt"
	"slices"

	tableio "github.com/dot5enko/simple-table-db/io"
	"github.com/dot5enko/simple-table-db/schema"
	"github.com/dot5enko/simple-table-db/store"
	"golang.org/x/exp/maps"
)

// ImportTicket identifies one file selection. Only the newest ticket may
// change the table.
type ImportTicket uint64

type ImportSummary struct {
	Rows       int
	NewColumns []schema.Column
}

type ImportOutcome struct {
	Summary ImportSummary
	Err     error
}

// NewImportTicket starts a file selection and supersedes every older one.
func (m *Manager) NewImportTicket() ImportTicket {
	return ImportTicket(m.importSeq.Add(1))
}

func (m *Manager) isCurrent(ticket ImportTicket) bool {
	return uint64(ticket) == m.importSeq.Load()
}

// reconcile builds the columns to append and the rows replacing the store.
// It does not touch the manager.
func reconcile(existing *schema.Schema, ds *tableio.Dataset) ([]schema.Column, store.Rows, error) {

	if ds == nil || ds.Len() == 0 {
		return nil, nil, ErrEmptyDataset
	}

	header := ds.Header
	if len(header) == 0 {
		header = maps.Keys(ds.Records[0])
		slices.Sort(header)
	}

	newColumns := []schema.Column{}
	seen := map[string]struct{}{}

	for _, h := range header {
		id := schema.ImportedColumnId(h)
		if id == store.IdField {
			continue
		}
		if _, dup := seen[id]; dup || existing.Has(id) {
			continue
		}
		seen[id] = struct{}{}
		newColumns = append(newColumns, schema.NewColumn(id, h, schema.TextFieldType))
	}

	rows := make(store.Rows, 0, ds.Len())

	for _, record := range ds.Records {
		row := store.NewRow(newRowId(), make(map[string]schema.Value, len(header)))

		for _, h := range header {
			id := schema.ImportedColumnId(h)
			if id == store.IdField {
				continue
			}
			row.Set(id, schema.CoerceImported(record[h]))
		}

		rows = append(rows, row)
	}

	return newColumns, rows, nil
}

// ApplyImport reconciles a parsed file into the table in one step: new columns
// are appended, every row is replaced, drafts of replaced rows are dropped and
// the view returns to the first page. On any error nothing changes.
func (m *Manager) ApplyImport(ticket ImportTicket, ds *tableio.Dataset, parseErr error) (ImportSummary, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if !m.isCurrent(ticket) {
		m.log.Warn("stale import result dropped", "ticket", uint64(ticket))
		return ImportSummary{}, ErrStaleImport
	}

	if parseErr != nil {
		m.log.Warn("import failed", "err", parseErr)
		return ImportSummary{}, parseErr
	}

	newColumns, rows, err := reconcile(m.schema, ds)
	if err != nil {
		m.log.Warn("import rejected", "err", err)
		return ImportSummary{}, err
	}

	if err := m.rows.SetAll(rows); err != nil {
		return ImportSummary{}, fmt.Errorf("unable to replace rows: %w", err)
	}
	m.schema.Append(newColumns...)
	m.params.Page = 0

	m.log.Info("import applied", "rows", len(rows), "new_columns", len(newColumns), "ticket", uint64(ticket))

	return ImportSummary{Rows: len(rows), NewColumns: newColumns}, nil
}

// ImportText parses csv text and applies it as the newest selection.
func (m *Manager) ImportText(text string) (ImportSummary, error) {
	ticket := m.NewImportTicket()

	ds, err := tableio.ParseCSV(text)
	return m.ApplyImport(ticket, ds, err)
}

func (m *Manager) readDataset(ctx context.Context, path string) (*tableio.Dataset, error) {
	text, err := m.Loader.ReadText(ctx, path)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrReadFile, err)
	}

	return tableio.ParseCSV(text)
}

// ImportFile reads, parses and applies a file. A newer selection made while
// this one is being read wins and this call reports ErrStaleImport.
func (m *Manager) ImportFile(ctx context.Context, path string) (ImportSummary, error) {
	ticket := m.NewImportTicket()

	ds, err := m.readDataset(ctx, path)
	return m.ApplyImport(ticket, ds, err)
}

// ImportFileAsync is ImportFile delivering its single outcome on a channel.
// The ticket is taken before returning, so selection order decides which
// result is applied.
func (m *Manager) ImportFileAsync(ctx context.Context, path string) <-chan ImportOutcome {
	ticket := m.NewImportTicket()
	outcome := make(chan ImportOutcome, 1)

	go func() {
		defer close(outcome)

		ds, err := m.readDataset(ctx, path)
		summary, applyErr := m.ApplyImport(ticket, ds, err)

		outcome <- ImportOutcome{Summary: summary, Err: applyErr}
	}()

	return outcome
}

// PreviewFile reads and checks a file without importing it and returns its
// leading records.
func (m *Manager) PreviewFile(ctx context.Context, path string) ([]map[string]string, error) {
	ds, err := m.readDataset(ctx, path)
	if err != nil {
		return nil, err
	}

	if ds.Len() == 0 {
		return nil, ErrEmptyDataset
	}

	return ds.Preview(m.config.ImportPreviewSize), nil
}
