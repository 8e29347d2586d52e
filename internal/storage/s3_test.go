package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testStore() *ImageStore {
	return &ImageStore{bucket: "photos", baseURL: "https://img.example.com"}
}

func TestPublicURL(t *testing.T) {
	s := testStore()
	assert.Equal(t, "https://img.example.com/apartments/a1/x.jpg",
		s.PublicURL("apartments/a1/x.jpg"))
	// Leading slashes on the path never double up.
	assert.Equal(t, "https://img.example.com/apartments/a1/x.jpg",
		s.PublicURL("/apartments/a1/x.jpg"))
}

func TestResizedURL(t *testing.T) {
	s := testStore()

	assert.Equal(t,
		"https://img.example.com/a/x.jpg?height=300&quality=80&width=400",
		s.ResizedURL("a/x.jpg", 400, 300, 80))

	// Zero values are omitted entirely.
	assert.Equal(t,
		"https://img.example.com/a/x.jpg?width=400",
		s.ResizedURL("a/x.jpg", 400, 0, 0))
	assert.Equal(t,
		"https://img.example.com/a/x.jpg",
		s.ResizedURL("a/x.jpg", 0, 0, 0))
}

func TestPathFromURL(t *testing.T) {
	s := testStore()

	assert.Equal(t, "apartments/a1/x.jpg",
		s.PathFromURL("https://img.example.com/apartments/a1/x.jpg"))
	// Resize parameters are stripped.
	assert.Equal(t, "apartments/a1/x.jpg",
		s.PathFromURL("https://img.example.com/apartments/a1/x.jpg?width=400&quality=80"))
	// Foreign URLs do not map to a bucket path.
	assert.Equal(t, "", s.PathFromURL("https://elsewhere.example.com/a/x.jpg"))
	assert.Equal(t, "", s.PathFromURL("not a url"))
}
