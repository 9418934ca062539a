package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteByType(t *testing.T) {
	dir := t.TempDir()
	w := Writer{Dir: dir}

	path, err := w.Write("BEGIN:VCARD\nEND:VCARD\n", "vcard")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "microdata.vcf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "BEGIN:VCARD\nEND:VCARD\n", string(data))

	path, err = w.Write(`{"items":[]}`, "json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "microdata.json"), path)
}

func TestWriteUnknownType(t *testing.T) {
	_, err := Writer{Dir: t.TempDir()}.Write("x", "xml")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestWriteDefaultsToHome(t *testing.T) {
	home := t.TempDir()
	original := osUserHomeDir
	defer func() { osUserHomeDir = original }()
	osUserHomeDir = func() (string, error) { return home, nil }

	path, err := Writer{}.Write("{}", "json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "microdata.json"), path)
}

func TestWriteNoHome(t *testing.T) {
	original := osUserHomeDir
	defer func() { osUserHomeDir = original }()
	osUserHomeDir = func() (string, error) { return "", errors.New("no home") }

	_, err := Writer{}.Write("{}", "json")
	assert.Error(t, err)
}

func TestWriteFailure(t *testing.T) {
	_, err := Writer{Dir: filepath.Join(t.TempDir(), "missing", "dir")}.Write("{}", "json")
	assert.Error(t, err)
}
