package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLightboxStartsClosed(t *testing.T) {
	var lb Lightbox
	_, open := lb.Active()
	assert.False(t, open)
	assert.Equal(t, -1, lb.Index())
}

func TestLightboxHoldsLastOpened(t *testing.T) {
	var lb Lightbox
	lb.Open(1, "/a.jpg")
	lb.Open(3, "/c.jpg")
	url, open := lb.Active()
	assert.True(t, open)
	assert.Equal(t, "/c.jpg", url)
	assert.Equal(t, 3, lb.Index())
}

func TestLightboxImageClickKeepsOpen(t *testing.T) {
	var lb Lightbox
	lb.Open(0, "/a.jpg")
	lb.ClickImage()
	url, open := lb.Active()
	assert.True(t, open)
	assert.Equal(t, "/a.jpg", url)
}

func TestLightboxClose(t *testing.T) {
	var lb Lightbox
	lb.Open(2, "/b.jpg")
	lb.Close()
	_, open := lb.Active()
	assert.False(t, open)

	lb.Close()
	_, open = lb.Active()
	assert.False(t, open)
}

func TestLightboxIgnoresEmptyURL(t *testing.T) {
	var lb Lightbox
	lb.Open(0, "")
	_, open := lb.Active()
	assert.False(t, open)
}

func TestLightboxFollow(t *testing.T) {
	var lb Lightbox
	lb.Open(4, "/e.jpg")
	assert.False(t, lb.Follow(3, "https://fallback/3"))
	assert.True(t, lb.Follow(4, "https://fallback/4"))
	url, _ := lb.Active()
	assert.Equal(t, "https://fallback/4", url)
}
