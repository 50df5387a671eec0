package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPhoto(t *testing.T) {
	tests := []struct {
		href string
		want bool
	}{
		{href: "", want: false},
		{href: "  \t\n", want: false},
		{href: "/files/101/photo1.jpg", want: true},
		{href: "not a url", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			assert.Equal(t, tt.want, PhotoRecord{StationID: "101", PhotoHref: tt.href}.HasPhoto())
		})
	}
}

func TestStationIDString(t *testing.T) {
	assert.Equal(t, "205", StationID("205").String())
}
