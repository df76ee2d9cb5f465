package crawler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "19001.json"),
		[]byte(`{"_id": 19001, "sitzungDatum": "2017-10-24T00:00:00", "rednerListe": []}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mdbs.json"),
		[]byte(`[{"_id": "11004097", "vorname": "Carsten", "nachname": "Schneider"}]`), 0o644))

	src := NewFileSource(dir)
	ctx := context.Background()

	doc, err := src.Session(ctx, "19001")
	require.NoError(t, err)
	assert.Equal(t, "19001", string(doc.Id))

	_, err = src.Session(ctx, "19002")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = src.Session(ctx, "../etc/passwd")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	mdbs, err := src.Mdbs(ctx)
	require.NoError(t, err)
	require.Len(t, mdbs, 1)
	assert.Equal(t, "Schneider", mdbs[0].Nachname)
}
