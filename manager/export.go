package manager

import (
	"bytes"
	"fmt"

	"github.com/dot5enko/simple-table-db/compression"
	tableio "github.com/dot5enko/simple-table-db/io"
)

type ExportFile struct {
	Name    string
	Payload []byte
}

// ExportFileName is table-export-<YYYY-MM-DD>.csv for the configured clock, in UTC.
func (m *Manager) ExportFileName() string {
	return "table-export-" + m.config.Now().UTC().Format("2006-01-02") + ".csv"
}

// Export renders every row of the store, ignoring search, sort and pages,
// limited to the visible columns in column order.
func (m *Manager) Export() (ExportFile, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	columns := m.schema.VisibleColumns()

	header := make([]string, len(columns))
	for idx, col := range columns {
		header[idx] = col.Label
	}

	lines := make([][]string, 0, m.rows.Len())
	for _, row := range m.rows.View() {
		cells := make([]string, len(columns))
		for idx, col := range columns {
			if v, ok := row.Field(col.Id); ok {
				cells[idx] = v.String()
			}
		}
		lines = append(lines, cells)
	}

	var buf bytes.Buffer
	if err := tableio.WriteCSV(&buf, header, lines); err != nil {
		return ExportFile{}, fmt.Errorf("unable to encode export: %w", err)
	}

	return ExportFile{Name: m.ExportFileName(), Payload: buf.Bytes()}, nil
}

// ExportTo offers the export as a download. With compress the payload is an
// lz4 frame and the name gets a .lz4 suffix.
func (m *Manager) ExportTo(d tableio.Downloader, compress bool) (ExportFile, error) {
	file, err := m.Export()
	if err != nil {
		return ExportFile{}, err
	}

	if compress {
		var out bytes.Buffer
		if err := compression.CompressLz4(file.Payload, &out); err != nil {
			return ExportFile{}, fmt.Errorf("unable to compress export: %w", err)
		}
		file = ExportFile{Name: file.Name + ".lz4", Payload: out.Bytes()}
	}

	if err := d.Offer(file.Name, file.Payload); err != nil {
		return ExportFile{}, fmt.Errorf("unable to offer %s: %w", file.Name, err)
	}

	m.log.Info("table exported", "file", file.Name, "bytes", len(file.Payload))

	return file, nil
}
