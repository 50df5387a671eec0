package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"srer/pkg/models"
)

var sample = []models.PhotoRecord{
	{
		StationID:   "101",
		ArchiveNo:   "A-1",
		PhotoHref:   "https://santarita.arizona.edu/files/101/photo1.jpg",
		SummaryText: "Looking north, 1902",
		Direction:   "N",
	},
	{StationID: "101"},
}

func TestSaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "meta.json")

	require.NoError(t, Save(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	records, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")
	require.NoError(t, Save(path, sample))
	assert.True(t, Exists(path))

	got, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(sample, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meta.json")

	require.NoError(t, Save(path, sample))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, Save(path, sample))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, string(first), `"photo_archive_no": "A-1"`)
	assert.Contains(t, string(first), `"photo_href": ""`)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")
	require.NoError(t, Save(path, sample))
	require.NoError(t, Save(path, sample[:1]))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLoadNullFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")
	content := `[{"station_id": "205", "photo_archive_no": null, "photo_href": null, "summary_text": "x", "direction": null}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.PhotoRecord{StationID: "205", SummaryText: "x"}, got[0])
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not": "a list"`), 0644))
	_, err = Load(bad)
	assert.Error(t, err)

	assert.False(t, Exists(dir))
}
