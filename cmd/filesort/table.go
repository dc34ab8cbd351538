package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"filesort/internal/export"
	"filesort/internal/organizer"
)

type tableColumn struct {
	title string
	right bool
}

// renderTable draws rows under columns. Short rows are padded; a non-nil
// footer is drawn below the rows.
func renderTable(columns []tableColumn, rows [][]string, footer []string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault

	configs := make([]table.ColumnConfig, 0, len(columns))
	header := make(table.Row, 0, len(columns))
	for i, col := range columns {
		header = append(header, col.title)
		align := text.AlignLeft
		if col.right {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft, AlignFooter: align})
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		tw.AppendRow(padRow(row, len(columns)))
	}
	if footer != nil {
		tw.AppendFooter(padRow(footer, len(columns)))
	}
	return tw.Render()
}

func padRow(values []string, width int) table.Row {
	row := make(table.Row, width)
	for i := range width {
		if i < len(values) {
			row[i] = values[i]
		} else {
			row[i] = ""
		}
	}
	return row
}

// renderMovesTable lists move records, one row per file, with a count of
// files per category in the footer. withTime adds the move time column used
// by the CSV log.
func renderMovesTable(records []organizer.Record, withTime bool) string {
	columns := []tableColumn{{title: "Original Name"}, {title: "Category"}, {title: "Moved To"}}
	if withTime {
		columns = append(columns, tableColumn{title: "Time"})
	}

	perCategory := make(map[string]int)
	var order []string
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := []string{rec.OriginalName, rec.Category, rec.MovedTo}
		if withTime {
			row = append(row, rec.Time.Local().Format(export.TimeLayout))
		}
		rows = append(rows, row)
		if perCategory[rec.Category] == 0 {
			order = append(order, rec.Category)
		}
		perCategory[rec.Category]++
	}

	var footer []string
	if len(order) > 1 {
		summary := ""
		for i, cat := range order {
			if i > 0 {
				summary += ", "
			}
			summary += cat + " " + strconv.Itoa(perCategory[cat])
		}
		footer = []string{strconv.Itoa(len(records)) + " " + plural(len(records), "file", "files"), summary}
	}
	return renderTable(columns, rows, footer)
}
