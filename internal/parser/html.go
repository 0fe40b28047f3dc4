package parser

import (
	"fmt"
	"io"
)

// HTMLRenderer passes pages through untouched; they are already
// rendered by the platform.
type HTMLRenderer struct{}

func (p *HTMLRenderer) Render(r io.Reader, filename string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}
	return data, nil
}
