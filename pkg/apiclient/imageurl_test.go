package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveImageURL(t *testing.T) {
	base := "http://localhost:8080"

	assert.Equal(t, PlaceholderImage, ResolveImageURL(base, ""))
	assert.Equal(t, "https://cdn.example.com/a.jpg", ResolveImageURL(base, "https://cdn.example.com/a.jpg"))
	assert.Equal(t, "http://cdn.example.com/a.jpg", ResolveImageURL(base, "http://cdn.example.com/a.jpg"))
	assert.Equal(t, "http://localhost:8080/uploads/a.jpg", ResolveImageURL(base, "/uploads/a.jpg"))
}

func TestClientImageURL(t *testing.T) {
	c := New("http://api.example.com/")
	assert.Equal(t, "http://api.example.com/uploads/a.jpg", c.ImageURL("/uploads/a.jpg"))
	assert.Equal(t, PlaceholderImage, c.ImageURL(""))
}
