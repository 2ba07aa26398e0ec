package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"photo-sorter/internal/organizer"
)

// renderReport prints the outcome of one run: skipped entries, a per-year
// table, conflicts and failures.
func renderReport(w io.Writer, r *organizer.Report, styled bool) {
	verb := "Moved"
	if r.DryRun {
		verb = "Would move"
		fmt.Fprintln(w, "[DRY RUN] No files will be moved.")
	}
	fmt.Fprintf(w, "Inspected image files in %s\n", r.Folder)

	for _, s := range r.Skipped {
		if s.Err != nil {
			fmt.Fprintf(w, "Skipping `%s`: %s (%v)\n", filepath.Base(s.Path), s.Reason, s.Err)
			continue
		}
		fmt.Fprintf(w, "Skipping `%s` because it is %s\n", filepath.Base(s.Path), s.Reason)
	}

	if r.ImagesFound() == 0 {
		fmt.Fprintln(w, "Could not find any images in this folder! No images will be moved.")
		return
	}

	headers := []string{"Year", "Folder", "Images", verb, "Kept in place"}
	rows := make([][]string, 0, len(r.Years))
	for _, y := range r.Years {
		rows = append(rows, []string{
			string(y.Year),
			y.Dir,
			strconv.Itoa(y.Planned),
			strconv.Itoa(y.Moved),
			strconv.Itoa(r.ConflictsFor(y.Year)),
		})
	}
	fmt.Fprintln(w, renderTable(headers, rows, styled))

	for _, c := range r.Conflicts {
		fmt.Fprintf(w, "`%s` already exists in `%s`! Keeping image in original folder.\n",
			filepath.Base(c.Source), filepath.Dir(c.Existing))
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "Failed to %s `%s`: %v\n", e.Op, filepath.Base(e.Path), e.Err)
	}

	fmt.Fprintf(w, "%s %d of %d images.\n", verb, r.TotalMoved(), r.ImagesFound())
	fmt.Fprintln(w, "Done!")
}

func renderTable(headers []string, rows [][]string, styled bool) string {
	tw := table.NewWriter()
	if styled {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if i >= 2 {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func shouldStyle(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
