package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/clipvault/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump_WritesCsvAndPng(t *testing.T) {
	f := setupApp(t)
	f.initialized(t)

	textEntry := f.insertEntry(t, models.ContentTypeText, []byte("exported text"))
	img := models.NewImageData(2, 1, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	f.insertEntry(t, models.ContentTypeImage, img.Marshal())

	dir := filepath.Join(t.TempDir(), "export")
	stubPassword(t, testPassword)
	require.NoError(t, f.app.Run(context.Background(), []string{"dump", dir, "-yes"}))
	assert.Contains(t, f.out.String(), "Exported 2 entries")

	data, err := os.ReadFile(filepath.Join(dir, "entries.csv"))
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 entries
	assert.Equal(t, []string{"id", "timestamp", "type", "content"}, rows[0])

	var pngName string
	for _, row := range rows[1:] {
		switch row[2] {
		case "text":
			assert.Equal(t, textEntry.ID, row[0])
			assert.Equal(t, "exported text", row[3])
		case "image":
			pngName = row[3]
		}
	}
	require.NotEmpty(t, pngName)

	pf, err := os.Open(filepath.Join(dir, pngName))
	require.NoError(t, err)
	defer pf.Close()

	decoded, err := png.Decode(pf)
	require.NoError(t, err)
	assert.Equal(t, 2, decoded.Bounds().Dx())
	assert.Equal(t, 1, decoded.Bounds().Dy())
}

func TestDump_Declined(t *testing.T) {
	f := setupApp(t)
	f.initialized(t)

	dir := filepath.Join(t.TempDir(), "export")
	f.app.reader = bufio.NewReader(strings.NewReader("n\n"))

	stubPassword(t, testPassword)
	require.NoError(t, f.app.Run(context.Background(), []string{"dump", dir}))
	assert.Contains(t, f.out.String(), "Aborted.")

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestDump_MissingDirArgument(t *testing.T) {
	f := setupApp(t)

	err := f.app.Run(context.Background(), []string{"dump"})
	assert.ErrorContains(t, err, "usage: clipvault dump")
}
