package parser

import (
	"bufio"
	"io"
	"strings"
)

// TextRenderer handles plain text files. Paragraphs are separated by
// blank lines; a paragraph underlined with === or --- becomes a level 1
// or level 2 heading.
type TextRenderer struct{}

func (p *TextRenderer) Render(r io.Reader, filename string) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs [][]string
	var current []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, current)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var body bodyWriter
	for _, lines := range paragraphs {
		if len(lines) == 2 {
			if level := underlineLevel(lines[1]); level > 0 {
				body.heading(level, strings.TrimSpace(lines[0]))
				continue
			}
		}
		body.paragraph(strings.Join(lines, "\n"))
	}
	return writePage(baseTitle(filename), body.String())
}

func underlineLevel(line string) int {
	line = strings.TrimSpace(line)
	switch {
	case len(line) >= 3 && strings.Trim(line, "=") == "":
		return 1
	case len(line) >= 3 && strings.Trim(line, "-") == "":
		return 2
	}
	return 0
}
