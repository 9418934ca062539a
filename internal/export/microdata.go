// Package export writes page microdata handed over by the engine to disk.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrUnknownType is returned for microdata types other than vcard and json.
var ErrUnknownType = errors.New("unknown microdata type")

var fileNames = map[string]string{
	"vcard": "microdata.vcf",
	"json":  "microdata.json",
}

// For mocking in tests
var osUserHomeDir = os.UserHomeDir

// Writer stores exported microdata under Dir, or the home directory when
// Dir is empty.
type Writer struct {
	Dir string
}

// FileName returns the file name used for a microdata type.
func FileName(dataType string) (string, error) {
	name, ok := fileNames[dataType]
	if !ok {
		return "", fmt.Errorf("%q: %w", dataType, ErrUnknownType)
	}
	return name, nil
}

// Write saves data and returns the path written.
func (w Writer) Write(data, dataType string) (string, error) {
	name, err := FileName(dataType)
	if err != nil {
		return "", err
	}
	dir := w.Dir
	if dir == "" {
		home, err := osUserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
		dir = home
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
