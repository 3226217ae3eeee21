package manager

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dot5enko/simple-table-db/compression"
	tableio "github.com/dot5enko/simple-table-db/io"
	"github.com/dot5enko/simple-table-db/manager/query"
	"github.com/dot5enko/simple-table-db/manager/session"
	"github.com/dot5enko/simple-table-db/schema"
	"github.com/dot5enko/simple-table-db/store"
)

var fixedNow = time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Logger = quietLogger()
	cfg.Now = func() time.Time { return fixedNow }

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("unable to create manager: %v", err)
	}
	return m
}

func writeFixture(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("unable to write fixture: %v", err)
	}
}

func rowIds(rows []ViewRow) []string {
	result := make([]string, len(rows))
	for i, it := range rows {
		result[i] = it.Row.Id
	}
	return result
}

func TestNewRejectsDuplicateInitialRows(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logger = quietLogger()
	cfg.Rows = append(cfg.Rows, cfg.Rows[0])

	if _, err := New(cfg); !errors.Is(err, store.ErrDuplicateId) {
		t.Errorf("expected ErrDuplicateId but got %v", err)
	}
}

func TestDefaultView(t *testing.T) {
	m := newTestManager(t)

	view := m.View()
	if view.Total != 10 || len(view.Rows) != 10 || view.PageCount != 1 || view.RowsPerPage != 10 {
		t.Errorf("unexpected default view %s", spew.Sdump(view.Total, view.PageCount, view.RowsPerPage))
	}
	if len(view.Columns) != 4 {
		t.Errorf("expected 4 visible columns but got %d", len(view.Columns))
	}
}

func TestSearchSortPaginateThroughCommands(t *testing.T) {
	m := newTestManager(t)

	m.SetSearchQuery("developer")
	if err := m.ToggleSort("age"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view := m.View()
	if !slices.Equal(rowIds(view.Rows), []string{"9", "6", "1", "4"}) {
		t.Errorf("unexpected ascending developers %v", rowIds(view.Rows))
	}

	m.ToggleSort("age")
	view = m.View()
	if view.SortOrder != query.DESC || !slices.Equal(rowIds(view.Rows), []string{"4", "1", "6", "9"}) {
		t.Errorf("second toggle must flip to descending, got %v", rowIds(view.Rows))
	}

	m.ToggleSort("name")
	if p := m.Params(); p.SortBy != "name" || p.SortOrder != query.ASC {
		t.Errorf("a new column must start ascending, got %+v", p)
	}
}

func TestPageResetRules(t *testing.T) {
	m := newTestManager(t)

	m.SetRowsPerPage(5)
	m.SetPage(1)

	m.SetSort("age", query.DESC)
	if m.Params().Page != 1 {
		t.Errorf("sorting must keep the page")
	}

	m.SetSearchQuery("e")
	if m.Params().Page != 0 {
		t.Errorf("search must reset the page")
	}

	m.SetPage(1)
	if err := m.SetRowsPerPage(25); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Params().Page != 0 {
		t.Errorf("rows per page must reset the page")
	}

	if err := m.SetRowsPerPage(7); !errors.Is(err, ErrInvalidRowsPerPage) {
		t.Errorf("expected ErrInvalidRowsPerPage but got %v", err)
	}
	if m.Params().RowsPerPage != 25 {
		t.Errorf("rejected rows per page must not change state")
	}

	if err := m.SetPage(-1); !errors.Is(err, ErrInvalidPage) {
		t.Errorf("expected ErrInvalidPage but got %v", err)
	}

	m.SetPage(40)
	if view := m.View(); len(view.Rows) != 0 || view.Total == 0 {
		t.Errorf("page past the end must be empty")
	}
}

func TestSortRejectsUnsortableAndUnknownColumns(t *testing.T) {
	m := newTestManager(t)

	columns := m.Columns()
	columns[1].Sortable = false
	if err := m.ReplaceColumns(columns); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.SetSort("name", query.ASC)

	if err := m.SetSort("email", query.DESC); !errors.Is(err, ErrColumnNotSortable) {
		t.Errorf("expected ErrColumnNotSortable but got %v", err)
	}
	if err := m.ToggleSort("email"); !errors.Is(err, ErrColumnNotSortable) {
		t.Errorf("expected ErrColumnNotSortable but got %v", err)
	}
	if err := m.SetSort("missing", query.ASC); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("expected ErrColumnNotFound but got %v", err)
	}

	if p := m.Params(); p.SortBy != "name" || p.SortOrder != query.ASC {
		t.Errorf("rejected sort must not change state, got %+v", p)
	}
}

func TestAddColumnAndToggle(t *testing.T) {
	m := newTestManager(t)

	col, err := m.AddColumn("Start Date", schema.TextFieldType)
	if err != nil || col.Id != "start_date" {
		t.Fatalf("unexpected result %+v %v", col, err)
	}

	_, err = m.AddColumn("start  date", schema.NumberFieldType)
	if !errors.Is(err, schema.ErrDuplicateColumn) {
		t.Fatalf("expected ErrDuplicateColumn but got %v", err)
	}
	if UserMessage(err) != "A column with this name already exists" {
		t.Errorf("unexpected message %q", UserMessage(err))
	}
	if len(m.Columns()) != 5 {
		t.Errorf("expected exactly one added column")
	}

	if !m.ToggleColumnVisibility("email") || len(m.VisibleColumns()) != 4 {
		t.Errorf("expected email to be hidden")
	}
	if m.ToggleColumnVisibility("nope") {
		t.Errorf("unknown column toggle must be a no-op")
	}
}

func TestEditRoundTrip(t *testing.T) {
	m := newTestManager(t)

	before, _ := m.Row("3")

	if err := m.BeginEdit("3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.CommitEdit("3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, _ := m.Row("3")
	if !before.Equal(after) {
		t.Errorf("commit without changes must keep the row: %s", spew.Sdump(before, after))
	}
	if m.Rows()[2].Id != "3" {
		t.Errorf("commit must keep the row position")
	}

	m.BeginEdit("3")
	v, err := m.SetDraftField("3", "age", "abc")
	if err != nil || !v.IsNumber() || v.Number != 0 {
		t.Errorf("expected numeric zero but got %+v %v", v, err)
	}
	m.SetDraftField("3", "name", "Robert")

	view := m.View()
	shown := view.Rows[2]
	if !shown.Editing || shown.Row.Fields["name"].Text != "Robert" {
		t.Errorf("view must show the draft of an edited row, got %s", spew.Sdump(shown))
	}

	if err := m.DiscardEdit("3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, _ = m.Row("3")
	if !before.Equal(after) {
		t.Errorf("discard must keep the row")
	}

	if err := m.DiscardEdit("3"); !errors.Is(err, session.ErrNoDraft) {
		t.Errorf("expected ErrNoDraft but got %v", err)
	}
	if _, err := m.SetDraftField("3", "name", "x"); !errors.Is(err, session.ErrNoDraft) {
		t.Errorf("expected ErrNoDraft but got %v", err)
	}
	if err := m.BeginEdit("404"); !errors.Is(err, store.ErrRowNotFound) {
		t.Errorf("expected ErrRowNotFound but got %v", err)
	}
}

func TestCommitEditWritesDraft(t *testing.T) {
	m := newTestManager(t)

	m.BeginEdit("1")
	m.SetDraftField("1", "age", "41.5")
	m.SetDraftField("1", "nickname", "JD")
	m.CommitEdit("1")

	row, _ := m.Row("1")
	if row.Fields["age"].Number != 41.5 || row.Fields["nickname"].Text != "JD" {
		t.Errorf("unexpected committed row %s", spew.Sdump(row))
	}
	if m.IsEditing("1") {
		t.Errorf("commit must end the edit")
	}
}

func TestCommitAndDiscardAll(t *testing.T) {
	m := newTestManager(t)

	m.BeginEdit("1")
	m.BeginEdit("2")
	m.SetDraftField("1", "role", "Lead")
	m.SetDraftField("2", "role", "Lead")

	if n := m.CommitAllEdits(); n != 2 {
		t.Errorf("expected 2 commits but got %d", n)
	}
	if len(m.EditingRows()) != 0 {
		t.Errorf("commit all must leave no drafts")
	}

	for _, id := range []string{"1", "2"} {
		row, _ := m.Row(id)
		if row.Fields["role"].Text != "Lead" {
			t.Errorf("row %s not committed", id)
		}
	}

	m.BeginEdit("3")
	m.BeginEdit("4")
	m.SetDraftField("3", "role", "Gone")

	if n := m.DiscardAllEdits(); n != 2 || len(m.EditingRows()) != 0 {
		t.Errorf("discard all must leave no drafts")
	}
	if row, _ := m.Row("3"); row.Fields["role"].Text != "Manager" {
		t.Errorf("discard all must not write drafts")
	}
}

func TestDeleteEvictsDraft(t *testing.T) {
	m := newTestManager(t)

	m.BeginEdit("2")
	if !m.DeleteRow("2") {
		t.Fatalf("expected delete to succeed")
	}

	if m.IsEditing("2") {
		t.Errorf("delete must evict the draft")
	}
	if err := m.CommitEdit("2"); !errors.Is(err, session.ErrNoDraft) {
		t.Errorf("expected ErrNoDraft but got %v", err)
	}
	if m.RowCount() != 9 {
		t.Errorf("expected 9 rows but got %d", m.RowCount())
	}
	if m.DeleteRow("2") {
		t.Errorf("second delete must be a no-op")
	}
}

func TestAddRowCoercesAndAssignsId(t *testing.T) {
	m := newTestManager(t)

	row, err := m.AddRow(map[string]string{"name": "Zed", "age": "x", "id": "forged"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if row.Id == "" || row.Id == "forged" {
		t.Errorf("row id must be generated, got %q", row.Id)
	}
	if !row.Fields["age"].IsNumber() || row.Fields["age"].Number != 0 {
		t.Errorf("number column must be coerced, got %+v", row.Fields["age"])
	}

	if err := m.InsertRow(store.NewRow(row.Id, nil)); !errors.Is(err, store.ErrDuplicateId) {
		t.Errorf("expected ErrDuplicateId but got %v", err)
	}
}

func TestImportScenario(t *testing.T) {
	m := newTestManager(t)
	m.BeginEdit("1")
	m.SetRowsPerPage(5)
	m.SetPage(1)

	summary, err := m.ImportText("Name,Bonus\nAlice,500\nBob,abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Rows != 2 || len(summary.NewColumns) != 1 || summary.NewColumns[0].Id != "bonus" {
		t.Fatalf("unexpected summary %s", spew.Sdump(summary))
	}

	bonus, _ := m.Column("bonus")
	if bonus.Label != "Bonus" || bonus.Type != schema.TextFieldType || !bonus.Visible || !bonus.Sortable {
		t.Errorf("unexpected inferred column %+v", bonus)
	}
	if len(m.Columns()) != 5 {
		t.Errorf("existing name column must be reused")
	}

	rows := m.Rows()
	if len(rows) != 2 {
		t.Fatalf("import must replace all rows, got %d", len(rows))
	}

	alice, bob := rows[0], rows[1]
	if alice.Id == bob.Id || alice.Id == "" || m.IsEditing("1") {
		t.Errorf("imported rows need fresh unique ids and old drafts must go")
	}
	if alice.Fields["name"].Text != "Alice" || !alice.Fields["bonus"].IsNumber() || alice.Fields["bonus"].Number != 500 {
		t.Errorf("unexpected alice %s", spew.Sdump(alice))
	}
	if bob.Fields["bonus"].IsNumber() || bob.Fields["bonus"].Text != "abc" {
		t.Errorf("unexpected bob %s", spew.Sdump(bob))
	}

	if m.Params().Page != 0 {
		t.Errorf("import must go back to the first page")
	}
}

func TestImportFailuresKeepState(t *testing.T) {
	m := newTestManager(t)

	_, err := m.ImportText("Name,Bonus\n")
	if !errors.Is(err, ErrEmptyDataset) || UserMessage(err) != "The CSV file is empty" {
		t.Errorf("expected ErrEmptyDataset but got %v", err)
	}

	_, err = m.ImportText("Name,Bonus\nAlice\n")
	var parseErr *tableio.ParseError
	if !errors.As(err, &parseErr) || !strings.HasPrefix(UserMessage(err), "Parse error: ") {
		t.Errorf("expected a parse error but got %v", err)
	}

	if m.RowCount() != 10 || len(m.Columns()) != 4 {
		t.Errorf("failed imports must not change state")
	}
}

func TestStaleImportIsDropped(t *testing.T) {
	m := newTestManager(t)

	older := m.NewImportTicket()
	newer := m.NewImportTicket()

	ds, _ := tableio.ParseCSV("Name\nOld")
	if _, err := m.ApplyImport(older, ds, nil); !errors.Is(err, ErrStaleImport) {
		t.Fatalf("expected ErrStaleImport but got %v", err)
	}
	if m.RowCount() != 10 {
		t.Errorf("stale result must not change state")
	}

	ds, _ = tableio.ParseCSV("Name\nNew")
	if _, err := m.ApplyImport(newer, ds, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows := m.Rows(); len(rows) != 1 || rows[0].Fields["name"].Text != "New" {
		t.Errorf("unexpected rows %s", spew.Sdump(rows))
	}
}

func TestImportFileAsyncLatestSelectionWins(t *testing.T) {
	m := newTestManager(t)
	dir := t.TempDir()

	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")
	writeFixture(t, first, "Name,City\nA,Oslo\nB,Rome\n")
	writeFixture(t, second, "Name,Score\nC,1\n")

	ctx := context.Background()
	firstOutcome := m.ImportFileAsync(ctx, first)
	secondOutcome := m.ImportFileAsync(ctx, second)

	if res := <-firstOutcome; !errors.Is(res.Err, ErrStaleImport) {
		t.Errorf("superseded selection must be dropped, got %v", res.Err)
	}
	if res := <-secondOutcome; res.Err != nil || res.Summary.Rows != 1 {
		t.Errorf("latest selection must apply, got %+v", res)
	}

	if _, ok := m.Column("city"); ok {
		t.Errorf("columns of a stale import must not appear")
	}
	if score, ok := m.Column("score"); !ok || score.Label != "Score" {
		t.Errorf("expected score column")
	}
}

func TestImportAndPreviewFile(t *testing.T) {
	m := newTestManager(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "people.csv")
	writeFixture(t, path, "Name,Age\nA,1\nB,2\nC,3\nD,4\nE,5\nF,6\n")

	preview, err := m.PreviewFile(context.Background(), path)
	if err != nil || len(preview) != 5 || preview[0]["Name"] != "A" {
		t.Errorf("unexpected preview %v %v", preview, err)
	}
	if m.RowCount() != 10 {
		t.Errorf("preview must not import")
	}

	summary, err := m.ImportFile(context.Background(), path)
	if err != nil || summary.Rows != 6 || len(summary.NewColumns) != 0 {
		t.Errorf("unexpected import %+v %v", summary, err)
	}

	_, err = m.ImportFile(context.Background(), filepath.Join(dir, "missing.csv"))
	if !errors.Is(err, ErrReadFile) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected read error but got %v", err)
	}
	if m.RowCount() != 6 {
		t.Errorf("failed read must not change state")
	}
}

func TestExportScenario(t *testing.T) {
	m, err := New(ManagerConfig{
		Logger:  quietLogger(),
		Now:     func() time.Time { return fixedNow },
		Columns: []schema.Column{schema.NewColumn("name", "Name", schema.TextFieldType)},
		Rows: store.Rows{
			store.NewRow("1", map[string]schema.Value{"name": schema.Text("Jo, A")}),
			store.NewRow("2", map[string]schema.Value{"name": schema.Text(`Bo "B"`)}),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	file, err := m.Export()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "Name\n\"Jo, A\"\n\"Bo \"\"B\"\"\""
	if string(file.Payload) != expected {
		t.Errorf("expected %q but got %q", expected, string(file.Payload))
	}
	if file.Name != "table-export-2026-03-14.csv" {
		t.Errorf("unexpected file name %q", file.Name)
	}
}

func TestExportIgnoresViewAndHiddenColumns(t *testing.T) {
	m := newTestManager(t)

	m.ToggleColumnVisibility("email")
	m.ToggleColumnVisibility("role")
	m.AddColumn("Notes", schema.TextFieldType)
	m.SetSearchQuery("jane")
	m.SetSort("age", query.DESC)

	file, _ := m.Export()
	lines := strings.Split(string(file.Payload), "\n")

	if len(lines) != 11 || lines[0] != "Name,Age,Notes" || lines[1] != "John Doe,28," {
		t.Errorf("unexpected export %q", lines[:2])
	}
}

type memoryDownloader struct {
	name    string
	payload []byte
}

func (d *memoryDownloader) Offer(name string, payload []byte) error {
	d.name = name
	d.payload = payload
	return nil
}

func TestExportToCompressed(t *testing.T) {
	m := newTestManager(t)
	d := &memoryDownloader{}

	plain, _ := m.Export()

	file, err := m.ExportTo(d, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.name != "table-export-2026-03-14.csv.lz4" || file.Name != d.name {
		t.Errorf("unexpected name %q", d.name)
	}

	restored, err := compression.DecompressLz4(d.payload)
	if err != nil || !bytes.Equal(restored, plain.Payload) {
		t.Errorf("compressed payload must restore the csv, %v", err)
	}

	dir := t.TempDir()
	if _, err := m.ExportTo(tableio.DirDownloader{Dir: dir}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	saved, err := os.ReadFile(filepath.Join(dir, "table-export-2026-03-14.csv"))
	if err != nil || !bytes.Equal(saved, plain.Payload) {
		t.Errorf("saved export mismatch: %v", err)
	}
}

func TestExportThenImportKeepsValues(t *testing.T) {
	m := newTestManager(t)
	file, _ := m.Export()

	if _, err := m.ImportText(string(file.Payload)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := m.Rows()
	if len(rows) != 10 || rows[2].Fields["name"].Text != "Bob Johnson" || rows[2].Fields["age"].Number != 45 {
		t.Errorf("unexpected rows after round trip %s", spew.Sdump(rows[2]))
	}
	if len(m.Columns()) != 4 {
		t.Errorf("round trip must not add columns")
	}
}

func TestDump(t *testing.T) {
	m := newTestManager(t)
	m.BeginEdit("1")

	var buf bytes.Buffer
	m.Dump(&buf)

	if !strings.Contains(buf.String(), "John Doe") || !strings.Contains(buf.String(), "Drafts") {
		t.Errorf("dump misses state: %s", buf.String())
	}
}

func TestQueryAndClearSort(t *testing.T) {
	m := newTestManager(t)

	m.SetSort("age", query.DESC)
	res := m.Query()
	if res.Total != 10 || res.Rows[0].Id != "3" {
		t.Errorf("expected oldest first, got %s", res.Rows[0].Id)
	}

	res.Rows[0].Set("name", schema.Text("mutated"))
	if row, _ := m.Row("3"); row.Fields["name"].Text != "Bob Johnson" {
		t.Errorf("query result must not alias live rows")
	}

	m.ClearSort()
	if res := m.Query(); res.Rows[0].Id != "1" {
		t.Errorf("cleared sort must restore store order")
	}

	m.BeginEdit("1")
	if _, err := m.SetDraftField("1", store.IdField, "x"); !errors.Is(err, session.ErrReadOnlyField) {
		t.Errorf("expected ErrReadOnlyField but got %v", err)
	}
}

func TestSetSortRejectsUnknownOrder(t *testing.T) {
	m := newTestManager(t)

	if err := m.SetSort("age", query.SortOrder(7)); !errors.Is(err, ErrInvalidSortOrder) {
		t.Fatalf("expected ErrInvalidSortOrder but got %v", err)
	}
	if p := m.Params(); p.SortBy != "" || p.SortOrder != query.ASC {
		t.Errorf("rejected order must not change state, got %+v", p)
	}

	var buf bytes.Buffer
	m.Dump(&buf)
	if strings.Contains(buf.String(), "PANIC") {
		t.Errorf("dump must render the sort order: %s", buf.String())
	}
	if view := m.View(); view.SortOrder.String() != "asc" {
		t.Errorf("unexpected order %s", view.SortOrder)
	}
}

func TestImportIdHeaderIsNotAColumn(t *testing.T) {
	m := newTestManager(t)

	summary, err := m.ImportText("ID,Name\n42,Alice\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.NewColumns) != 0 {
		t.Errorf("id header must not become a column, got %s", spew.Sdump(summary.NewColumns))
	}
	if _, ok := m.Column("id"); ok {
		t.Errorf("unexpected id column")
	}

	row := m.Rows()[0]
	if row.Id == "42" || row.Fields["name"].Text != "Alice" {
		t.Errorf("imported rows keep generated ids, got %s", spew.Sdump(row))
	}
	if _, ok := row.Fields["id"]; ok {
		t.Errorf("id value must not be stored as a field")
	}
}

func TestConfigDefaults(t *testing.T) {
	m, err := New(ManagerConfig{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := m.Config()
	if cfg.TableName != "table" || cfg.DefaultRowsPerPage != 10 || cfg.ImportPreviewSize != 5 || cfg.Now == nil {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if !slices.Equal(cfg.RowsPerPageOptions, DefaultRowsPerPageOptions) {
		t.Errorf("unexpected options %v", cfg.RowsPerPageOptions)
	}

	m, _ = New(ManagerConfig{Logger: quietLogger(), RowsPerPageOptions: []int{20, 40}})
	if m.Config().DefaultRowsPerPage != 20 || m.Params().RowsPerPage != 20 {
		t.Errorf("default must fall back to the first option")
	}

	if _, err := New(ManagerConfig{RowsPerPageOptions: []int{0}}); !errors.Is(err, ErrInvalidRowsPerPage) {
		t.Errorf("expected ErrInvalidRowsPerPage but got %v", err)
	}
}
