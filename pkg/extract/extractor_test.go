package extract

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"srer/pkg/config"
	"srer/pkg/models"
)

const stationPage = `<html><body>
<div class="view-content">
  <div class="views-row">
    <div class="views-field-field-image"><a href="/files/101/photo1.jpg"><img src="/files/101/thumb1.jpg"></a></div>
    <div class="views-field-field-archive-no"><span class="field-content">SRER-101-A</span></div>
    <div class="views-field-field-summary"><div class="field-content">
      Looking   north
      toward the gage, 1902
    </div></div>
    <div class="views-field-field-direction"><span class="field-content"> N </span></div>
  </div>
  <div class="views-row">
    <div class="views-field-field-summary"><div class="field-content">No image on file</div></div>
  </div>
  <div class="views-row">
    <div class="views-field-field-image"><img data-src="https://cdn.example.org/205.jpg"></div>
  </div>
</div>
</body></html>`

func TestExtract(t *testing.T) {
	e := New(DefaultSelectors())

	got, err := e.Extract("101", strings.NewReader(stationPage))
	require.NoError(t, err)

	want := []models.PhotoRecord{
		{
			StationID:   "101",
			ArchiveNo:   "SRER-101-A",
			PhotoHref:   "/files/101/photo1.jpg",
			SummaryText: "Looking north toward the gage, 1902",
			Direction:   "N",
		},
		{StationID: "101", SummaryText: "No image on file"},
		{StationID: "101", PhotoHref: "https://cdn.example.org/205.jpg"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractKMarkersKRecords(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 7; i++ {
		b.WriteString(`<div class="views-row"><p>broken`)
	}
	b.WriteString("</body></html>")

	got, err := New(DefaultSelectors()).Extract("9", strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Len(t, got, 7)
	for _, r := range got {
		assert.Equal(t, models.PhotoRecord{StationID: "9"}, r)
	}
}

func TestExtractNoEntries(t *testing.T) {
	got, err := New(DefaultSelectors()).Extract("1", strings.NewReader("not really html"))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtractImageAttributeOrder(t *testing.T) {
	page := `<div class="views-row"><div class="views-field-field-image">
		<a href="  ">x</a></div></div>
		<div class="views-row"><div class="views-field-field-image">
		<img src="/a.jpg" data-src="/b.jpg"></div></div>`

	got, err := New(DefaultSelectors()).Extract("1", strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "", got[0].PhotoHref)
	assert.Equal(t, "/a.jpg", got[1].PhotoHref)
}

func TestSelectorsFromConfig(t *testing.T) {
	s := SelectorsFromConfig(config.SelectorConfig{Entry: "li.photo", Direction: ".dir"})

	assert.Equal(t, "li.photo", s.Entry)
	assert.Equal(t, ".dir", s.Direction)
	assert.Equal(t, DefaultImageSelector, s.Image)
	assert.Equal(t, DefaultSummarySelector, s.Summary)
	assert.Equal(t, DefaultArchiveNoSelector, s.ArchiveNo)

	page := `<ul><li class="photo"><img src="/x.jpg"><span class="dir">SW</span></li></ul>`
	got, err := New(SelectorsFromConfig(config.SelectorConfig{
		Entry: "li.photo", Image: "img", Direction: ".dir",
	})).Extract("7", strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, []models.PhotoRecord{{StationID: "7", PhotoHref: "/x.jpg", Direction: "SW"}}, got)
}
