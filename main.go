package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	tableio "github.com/dot5enko/simple-table-db/io"
	"github.com/dot5enko/simple-table-db/manager"
	"github.com/dot5enko/simple-table-db/manager/query"
	"github.com/fatih/color"
)

func printView(m *manager.Manager) {

	view := m.View()

	labels := make([]string, 0, len(view.Columns))
	for _, col := range view.Columns {
		labels = append(labels, col.Label)
	}
	color.Green("%s", strings.Join(labels, " | "))

	for _, it := range view.Rows {
		cells := make([]string, 0, len(view.Columns))
		for _, col := range view.Columns {
			v, _ := it.Row.Field(col.Id)
			cells = append(cells, v.String())
		}

		line := strings.Join(cells, " | ")
		if it.Editing {
			color.Yellow("%s (editing)", line)
		} else {
			fmt.Println(line)
		}
	}

	log.Printf(" page %d/%d, %d rows matched", view.Page+1, view.PageCount, view.Total)
}

// usage: simple-table-db [file.csv] [search] [export dir] [column:asc|desc]
func main() {

	m, err := manager.New(manager.DefaultConfig())
	if err != nil {
		panic(err)
	}

	args := os.Args[1:]

	if len(args) > 0 && args[0] != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		preview, previewErr := m.PreviewFile(ctx, args[0])
		if previewErr != nil {
			color.Red("unable to import %s: %s", args[0], manager.UserMessage(previewErr))
			os.Exit(1)
		}
		slog.Info("import preview", "path", args[0], "records", len(preview))

		summary, importErr := m.ImportFile(ctx, args[0])
		if importErr != nil {
			color.Red("unable to import %s: %s", args[0], manager.UserMessage(importErr))
			os.Exit(1)
		}
		color.Green("imported %d rows, %d new columns", summary.Rows, len(summary.NewColumns))
	}

	if len(args) > 1 {
		m.SetSearchQuery(args[1])
	}

	if len(args) > 3 {
		columnId, orderName, _ := strings.Cut(args[3], ":")

		order, orderErr := query.ParseSortOrder(orderName)
		if orderErr == nil {
			orderErr = m.SetSort(columnId, order)
		}
		if orderErr != nil {
			color.Red("unable to sort by %s: %s", args[3], orderErr.Error())
			os.Exit(1)
		}
	}

	printView(m)

	if len(args) > 2 && args[2] != "" {
		file, exportErr := m.ExportTo(tableio.DirDownloader{Dir: args[2]}, false)
		if exportErr != nil {
			color.Red("export failed: %s", exportErr.Error())
			os.Exit(1)
		}
		color.Green("exported %s", file.Name)
	}
}
