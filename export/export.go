package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"taskstore/store"
)

// ErrUnknownFormat is returned for formats other than json, csv and pdf.
var ErrUnknownFormat = errors.New("unknown export format")

// Exporter renders the full task list in a downloadable format.
type Exporter struct{ st *store.TaskStore }

func NewExporter(st *store.TaskStore) *Exporter { return &Exporter{st: st} }

func (e *Exporter) Export(ctx context.Context, format string) ([]byte, error) {
	tasks, err := e.st.List(ctx)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(tasks, "", "  ")

	case "csv":
		var b strings.Builder
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"id", "title", "description", "completed", "created_at"})
		for _, t := range tasks {
			_ = w.Write([]string{
				strconv.FormatInt(t.ID, 10),
				t.Title,
				t.Description,
				strconv.FormatBool(t.Completed),
				t.CreatedAt.Format(time.RFC3339),
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return []byte(b.String()), nil

	case "pdf":
		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(40, 10, "Task List")
		pdf.Ln(12)
		pdf.SetFont("Arial", "", 10)
		for _, t := range tasks {
			mark := "[ ]"
			if t.Completed {
				mark = "[x]"
			}
			line := fmt.Sprintf("%s #%d %s", mark, t.ID, t.Title)
			if t.Description != "" {
				line += " - " + t.Description
			}
			pdf.MultiCell(0, 6, line, "0", "L", false)
		}
		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
