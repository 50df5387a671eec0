package stations

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"srer/pkg/models"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stations.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		opts    Options
		want    []models.StationID
	}{
		{
			name:    "one per line",
			content: "101\n205\n",
			want:    []models.StationID{"101", "205"},
		},
		{
			name:    "duplicates kept in order",
			content: "101\n205\n101\n",
			want:    []models.StationID{"101", "205", "101"},
		},
		{
			name:    "first field only and trimmed",
			content: " 101 ,Lower site\n205,Upper site,extra\n",
			want:    []models.StationID{"101", "205"},
		},
		{
			name:    "blank lines and comments skipped",
			content: "# stations\n101\n\n   \n205\n",
			want:    []models.StationID{"101", "205"},
		},
		{
			name:    "header skipped",
			content: "station_id,name\n101,a\n",
			opts:    Options{SkipHeader: true},
			want:    []models.StationID{"101"},
		},
		{
			name:    "custom delimiter",
			content: "101;a\n205;b\n",
			opts:    Options{Delimiter: ";"},
			want:    []models.StationID{"101", "205"},
		},
		{
			name:    "empty file",
			content: "",
			want:    []models.StationID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeFile(t, tt.content), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadStrayQuotes(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bare quote in name column", content: "101,Station \"North\" rim\n205,plain\n"},
		{name: "quoted name column", content: "101,\"Lower, east\"\n205,\"Upper\"\n"},
		{name: "quoted identifier", content: "\"101\",a\n205,b\n"},
		{name: "unterminated quote", content: "101,a\n205,\"open\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.content), Options{})
			require.NoError(t, err)
			assert.Equal(t, []models.StationID{"101", "205"}, got)
		})
	}
}

func TestReadByteOrderMark(t *testing.T) {
	got, err := Read(strings.NewReader("\uFEFF101,a\n205,b\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []models.StationID{"101", "205"}, got)

	got, err = Read(strings.NewReader("\uFEFFstation,name\n101,a\n"), Options{SkipHeader: true})
	require.NoError(t, err)
	assert.Equal(t, []models.StationID{"101"}, got)
}

func TestReadBadDelimiter(t *testing.T) {
	_, err := Read(strings.NewReader("101\n"), Options{Delimiter: ";;"})
	assert.Error(t, err)
}
