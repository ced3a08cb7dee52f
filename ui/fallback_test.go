package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPolicy = FallbackPolicy{
	Hero:    "https://img.example/hero",
	Bio:     "https://img.example/bio",
	Gallery: []string{"https://img.example/f0", "https://img.example/f1", "https://img.example/f2", "https://img.example/f3"},
}

func TestFallbackPolicyCyclesGallery(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, testPolicy.Gallery[0]},
		{3, testPolicy.Gallery[3]},
		{4, testPolicy.Gallery[0]},
		{5, testPolicy.Gallery[1]},
		{6, testPolicy.Gallery[2]},
		{11, testPolicy.Gallery[3]},
	}
	for _, tt := range tests {
		if got := testPolicy.For(GallerySlot(tt.index)); got != tt.want {
			t.Errorf("For(gallery %d) = %q, want %q", tt.index, got, tt.want)
		}
	}
	assert.Equal(t, testPolicy.For(GallerySlot(0)), testPolicy.For(GallerySlot(4)))
}

func TestFallbackPolicyDedicated(t *testing.T) {
	assert.Equal(t, testPolicy.Hero, testPolicy.For(SlotHero))
	assert.Equal(t, testPolicy.Bio, testPolicy.For(SlotBio))
	assert.Empty(t, FallbackPolicy{}.For(GallerySlot(2)))
}

func TestResolverSubstitutesOnce(t *testing.T) {
	r := NewFallbackResolver(testPolicy)
	r.Register(GallerySlot(5), "/assets/5.jpg")
	assert.Equal(t, "/assets/5.jpg", r.Resolve(GallerySlot(5)))

	url, changed := r.Fail(GallerySlot(5))
	require.True(t, changed)
	assert.Equal(t, testPolicy.Gallery[1], url)

	for i := 0; i < 3; i++ {
		url, changed = r.Fail(GallerySlot(5))
		assert.False(t, changed)
		assert.Equal(t, testPolicy.Gallery[1], url)
	}

	ref, ok := r.Image(GallerySlot(5))
	require.True(t, ok)
	assert.True(t, ref.Substituted())
	assert.False(t, ref.CanFallBack())
}

func TestResolverWithoutFallback(t *testing.T) {
	r := NewFallbackResolver(FallbackPolicy{})
	r.Register(SlotHero, "/hero.jpg")

	url, changed := r.Fail(SlotHero)
	assert.False(t, changed)
	assert.Equal(t, "/hero.jpg", url)
	ref, _ := r.Image(SlotHero)
	assert.True(t, ref.Tried)
	assert.False(t, ref.Substituted())
}

func TestResolverUnknownSlot(t *testing.T) {
	r := NewFallbackResolver(testPolicy)
	url, changed := r.Fail(GallerySlot(1))
	assert.False(t, changed)
	assert.Empty(t, url)
	assert.Empty(t, r.Resolve(SlotBio))
}

func TestParseSlot(t *testing.T) {
	for _, v := range []string{"hero", "bio", "gallery-0", "gallery-12"} {
		_, ok := ParseSlot(v)
		assert.True(t, ok, v)
	}
	for _, v := range []string{"", "gallery-", "gallery--1", "gallery-x", "footer"} {
		_, ok := ParseSlot(v)
		assert.False(t, ok, v)
	}
}
