package render

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"
)

// Table writes rows under a header, aligned in columns. An empty row set
// still prints the header so scripted callers get a stable shape.
func Table(w io.Writer, header []string, rows [][]any) {
	t := uitable.New()
	t.MaxColWidth = 60

	h := make([]any, len(header))
	for i, col := range header {
		h[i] = col
	}
	t.AddRow(h...)

	for _, row := range rows {
		t.AddRow(row...)
	}

	fmt.Fprintln(w, t)
}
