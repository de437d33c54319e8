// Package export writes the budget spreadsheet from the CLI.
package export

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"

	"tableflip.dev/planner/pkg/export"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/printers"
)

type Export struct {
	Planner *planner.Planner
	Out     io.Writer
	// Path of the .xlsx file; a directory gets the default file name.
	Path   string
	Output string
}

type Result struct {
	Path   string   `json:"path"`
	Sheets []string `json:"sheets"`
}

func (e *Export) Do(ctx context.Context) error {
	if e.Planner == nil {
		return errors.New("no planner")
	}
	path, err := homedir.Expand(e.Path)
	if err != nil {
		return err
	}
	if path == "" {
		path = export.DefaultFileName
	} else if filepath.Ext(path) == "" {
		path = filepath.Join(path, export.DefaultFileName)
	}

	wb := export.BuildWorkbook(e.Planner.Categories(), e.Planner.Expenses())
	if err := export.WriteFile(path, wb); err != nil {
		return err
	}

	res := Result{Path: path}
	for _, s := range wb.Sheets {
		res.Sheets = append(res.Sheets, s.Name)
	}
	pp := printers.PrettyPrint{Out: e.Out}
	return pp.Render(e.Output, res, func() {
		pp.Printf("Wrote %d sheets to %s\n", len(res.Sheets), res.Path)
	})
}
