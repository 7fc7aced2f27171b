package recordstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ehr/dashboard/internal/domain/patient"
)

// File reads the blob from a JSON file. A missing file is an empty
// collection.
type File struct {
	path string
}

func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: path required")
	}
	return &File{path: path}, nil
}

func (f *File) Driver() Driver { return DriverFile }

func (f *File) Load(ctx context.Context) (patient.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return patient.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return Decode(DriverFile, f.path, data)
}
