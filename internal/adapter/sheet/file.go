package sheet

import (
	"context"
	"fmt"
	"os"
)

// File reads the CSV from disk, e.g. a sheet downloaded by hand or an Excel
// export. It implements pipeline.Extractor.
type File struct {
	path     string
	encoding string
}

// NewFile creates a file source.
func NewFile(path, encoding string) *File {
	return &File{path: path, encoding: encoding}
}

func (f *File) Extract(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read sheet file: %w", err)
	}
	return decode(data, f.encoding)
}
