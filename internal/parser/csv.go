package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// CSVRenderer handles CSV files. Rows are grouped into sections of
// twenty, each under its own heading.
type CSVRenderer struct{}

func (p *CSVRenderer) Render(r io.Reader, filename string) ([]byte, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	title := baseTitle(filename)
	var body bodyWriter
	body.heading(1, title)
	if len(records) == 0 {
		return writePage(title, body.String())
	}

	headers := records[0]
	const batchSize = 20
	dataRows := records[1:]

	for i := 0; i < len(dataRows); i += batchSize {
		end := min(i+batchSize, len(dataRows))
		body.heading(2, fmt.Sprintf("Rows %d-%d", i+2, end+1)) // 1-indexed, skip header
		body.WriteString("<table><thead><tr>")
		for _, h := range headers {
			body.WriteString("<th>" + html.EscapeString(h) + "</th>")
		}
		body.WriteString("</tr></thead><tbody>\n")
		for _, row := range dataRows[i:end] {
			body.WriteString("<tr>")
			for _, cell := range row {
				body.WriteString("<td>" + html.EscapeString(cell) + "</td>")
			}
			body.WriteString("</tr>\n")
		}
		body.WriteString("</tbody></table>\n")
	}
	return writePage(title, body.String())
}
