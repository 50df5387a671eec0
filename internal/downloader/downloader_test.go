package downloader

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"srer/pkg/logger"
	"srer/pkg/metadata"
	"srer/pkg/models"
	"srer/pkg/repeatphoto"
	"srer/pkg/report"
	"srer/pkg/storage"
)

// imageServer serves /files/<name> with the name as body and 404 for /missing/*
type imageServer struct {
	server *httptest.Server
	calls  int32
}

func newImageServer(t *testing.T) *imageServer {
	s := &imageServer{}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.calls, 1)
		if filepath.Dir(r.URL.Path) != "/files" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		fmt.Fprintf(w, "jpeg:%s", filepath.Base(r.URL.Path))
	}))
	t.Cleanup(s.server.Close)
	return s
}

func (s *imageServer) Calls() int {
	return int(atomic.LoadInt32(&s.calls))
}

func (s *imageServer) baseURL(t *testing.T) *url.URL {
	u, err := url.Parse(s.server.URL)
	require.NoError(t, err)
	return u
}

func newTestDownloader(t *testing.T, srv *imageServer, root string) (*Downloader, *logger.TestLogger) {
	t.Helper()
	manager, err := storage.NewManager(root)
	require.NoError(t, err)

	log := logger.NewTestLogger()
	client := repeatphoto.NewClient(repeatphoto.WithLogger(log))
	return New(client, manager, srv.baseURL(t), log), log
}

func listTree(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if info.IsDir() {
			rel += "/"
		}
		files = append(files, rel)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

func TestRunSingleRecord(t *testing.T) {
	srv := newImageServer(t)
	root := t.TempDir()
	d, _ := newTestDownloader(t, srv, root)

	records := []models.PhotoRecord{
		{StationID: "101", PhotoHref: srv.server.URL + "/files/photo1.jpg"},
	}

	rep, err := d.Run(context.Background(), records)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "101", "photo1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg:photo1.jpg", string(data))

	require.Len(t, rep.Outcomes, 1)
	assert.Equal(t, report.StatusSuccess, rep.Outcomes[0].Status)
	assert.Equal(t, int64(len(data)), rep.Outcomes[0].Records)
}

func TestRunUnusableReferencesMakeNoRequests(t *testing.T) {
	srv := newImageServer(t)
	root := t.TempDir()
	d, _ := newTestDownloader(t, srv, root)

	records := []models.PhotoRecord{
		{StationID: "101", PhotoHref: ""},
		{StationID: "101", PhotoHref: "   "},
		{StationID: "101", PhotoHref: "http://[::1"},
		{StationID: "205", PhotoHref: "mailto:someone@example.org"},
		{StationID: "205", PhotoHref: srv.server.URL + "/files/"},
	}

	rep, err := d.Run(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, 0, srv.Calls())
	assert.Equal(t, len(records), rep.Count(report.StatusSkipped))

	reasons := make([]string, 0, len(rep.Outcomes))
	for _, o := range rep.Outcomes {
		reasons = append(reasons, o.Reason)
	}
	assert.Equal(t, "no image reference", reasons[0])
	assert.Equal(t, "no image reference", reasons[1])
	assert.NotEqual(t, "no image reference", reasons[2])

	// Station directories are still created
	assert.Equal(t, []string{"./", "101/", "205/"}, listTree(t, root))
}

func TestRunFetchFailureContinues(t *testing.T) {
	srv := newImageServer(t)
	root := t.TempDir()
	d, log := newTestDownloader(t, srv, root)

	records := []models.PhotoRecord{
		{StationID: "101", PhotoHref: "/missing/gone.jpg"},
		{StationID: "101", PhotoHref: "/files/ok.jpg"},
	}

	rep, err := d.Run(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, 2, srv.Calls())
	assert.Equal(t, 1, rep.Count(report.StatusFailed))
	assert.Equal(t, 1, rep.Count(report.StatusSuccess))
	assert.Equal(t, "http_status", rep.Filter(report.StatusFailed)[0].Reason)
	assert.FileExists(t, filepath.Join(root, "101", "ok.jpg"))
	assert.NoFileExists(t, filepath.Join(root, "101", "gone.jpg"))
	assert.True(t, log.HasMessage("Image download failed"))
}

func TestRunTwiceSameTree(t *testing.T) {
	srv := newImageServer(t)
	root := t.TempDir()
	d, _ := newTestDownloader(t, srv, root)

	records := []models.PhotoRecord{
		{StationID: "101", PhotoHref: "/files/a.jpg"},
		{StationID: "205", PhotoHref: "/files/b.jpg"},
		{StationID: "205", PhotoHref: ""},
	}

	_, err := d.Run(context.Background(), records)
	require.NoError(t, err)
	first := listTree(t, root)

	_, err = d.Run(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, first, listTree(t, root))
	assert.Equal(t, []string{"./", "101/", "101/a.jpg", "205/", "205/b.jpg"}, first)
}

func TestRunUnsafeStationID(t *testing.T) {
	srv := newImageServer(t)
	root := t.TempDir()
	d, _ := newTestDownloader(t, srv, root)

	rep, err := d.Run(context.Background(), []models.PhotoRecord{
		{StationID: "..", PhotoHref: "/files/a.jpg"},
		{StationID: "", PhotoHref: "/files/a.jpg"},
		{StationID: "a/b", PhotoHref: "/files/a.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, srv.Calls())
	assert.Equal(t, 3, rep.Count(report.StatusSkipped))
	assert.Equal(t, []string{"./"}, listTree(t, root))
}

func TestRunFilesystemErrorStops(t *testing.T) {
	srv := newImageServer(t)
	root := t.TempDir()
	d, _ := newTestDownloader(t, srv, root)

	// A file where the station directory should go
	require.NoError(t, os.WriteFile(filepath.Join(root, "101"), []byte("x"), 0644))

	rep, err := d.Run(context.Background(), []models.PhotoRecord{
		{StationID: "101", PhotoHref: "/files/a.jpg"},
		{StationID: "205", PhotoHref: "/files/b.jpg"},
	})
	require.Error(t, err)
	assert.Len(t, rep.Outcomes, 1)
	assert.Equal(t, 0, srv.Calls())
}

func TestRunFromFile(t *testing.T) {
	srv := newImageServer(t)
	root := t.TempDir()
	d, _ := newTestDownloader(t, srv, root)

	path := filepath.Join(t.TempDir(), "meta.json")
	require.NoError(t, metadata.Save(path, []models.PhotoRecord{
		{StationID: "101", PhotoHref: "/files/photo1.jpg"},
	}))

	rep, err := d.RunFromFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Count(report.StatusSuccess))
	assert.FileExists(t, filepath.Join(root, "101", "photo1.jpg"))

	_, err = d.RunFromFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRunCancelled(t *testing.T) {
	srv := newImageServer(t)
	d, _ := newTestDownloader(t, srv, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Run(ctx, []models.PhotoRecord{{StationID: "101", PhotoHref: "/files/a.jpg"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, srv.Calls())
}
