package manager

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	tableio "github.com/dot5enko/simple-table-db/io"
	"github.com/dot5enko/simple-table-db/manager/query"
	"github.com/dot5enko/simple-table-db/manager/session"
	"github.com/dot5enko/simple-table-db/schema"
	"github.com/dot5enko/simple-table-db/store"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

var DefaultRowsPerPageOptions = []int{5, 10, 25, 50}

type ManagerConfig struct {
	TableName string

	// initial state
	Columns []schema.Column
	Rows    store.Rows

	RowsPerPageOptions []int
	DefaultRowsPerPage int

	// ImportPreviewSize is how many records PreviewFile returns
	ImportPreviewSize int

	// Locale drives text ordering when sorting
	Locale language.Tag

	Now    func() time.Time
	Logger *slog.Logger
}

// Manager owns the table: columns, rows, edit drafts and view parameters.
// Every mutation goes through its methods and runs to completion under the lock.
type Manager struct {
	lock sync.RWMutex

	config ManagerConfig

	schema *schema.Schema
	rows   *store.RowStore
	edits  *session.EditSession
	params query.Params

	Planner *query.QueryPlanner
	Loader  *tableio.FileLoader

	importSeq atomic.Uint64

	log *slog.Logger
}

func (c ManagerConfig) withDefaults() ManagerConfig {

	if c.TableName == "" {
		c.TableName = "table"
	}

	if len(c.RowsPerPageOptions) == 0 {
		c.RowsPerPageOptions = DefaultRowsPerPageOptions
	}
	c.RowsPerPageOptions = slices.Clone(c.RowsPerPageOptions)

	if !slices.Contains(c.RowsPerPageOptions, c.DefaultRowsPerPage) {
		if slices.Contains(c.RowsPerPageOptions, 10) {
			c.DefaultRowsPerPage = 10
		} else {
			c.DefaultRowsPerPage = c.RowsPerPageOptions[0]
		}
	}

	if c.ImportPreviewSize <= 0 {
		c.ImportPreviewSize = 5
	}

	if c.Locale == language.Und {
		c.Locale = language.English
	}

	if c.Now == nil {
		c.Now = time.Now
	}

	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	return c
}

func New(config ManagerConfig) (*Manager, error) {

	config = config.withDefaults()

	for _, it := range config.RowsPerPageOptions {
		if it <= 0 {
			return nil, fmt.Errorf("rows per page option %d: %w", it, ErrInvalidRowsPerPage)
		}
	}

	edits := session.New()

	m := &Manager{
		config: config,
		schema: schema.New(config.TableName, nil),
		rows:   store.New(),
		edits:  edits,
		params: query.Params{
			SortOrder:   query.ASC,
			RowsPerPage: config.DefaultRowsPerPage,
		},
		Planner: query.NewQueryPlanner(config.Locale),
		Loader:  tableio.NewFileLoader(),
		log:     config.Logger.With("table", config.TableName),
	}

	m.rows.AddEvictor(edits)

	for _, col := range config.Columns {
		if m.schema.Has(col.Id) {
			return nil, fmt.Errorf("initial column `%s`: %w", col.Id, schema.ErrDuplicateColumn)
		}
		m.schema.Append(col)
	}

	if err := m.rows.SetAll(config.Rows); err != nil {
		return nil, fmt.Errorf("unable to load initial rows: %w", err)
	}

	return m, nil
}

func (m *Manager) Config() ManagerConfig {
	return m.config
}

func newRowId() string {
	uid, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return uid.String()
}
