package stagepage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/eringen/stagepage/content"
	"github.com/eringen/stagepage/ui"
)

func TestRegistryMountGetUnmount(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	r := NewViewRegistry(content.Default(content.ThemeClassic), time.Minute, 0)
	defer r.Close()

	v := r.Mount()
	require.True(t, v.Mounted())
	got, err := r.Get(v.ID())
	require.NoError(t, err)
	assert.Same(t, v, got)

	assert.True(t, r.Unmount(v.ID()))
	assert.False(t, v.Mounted())
	assert.Equal(t, 0, v.Viewport().Subscribers())

	_, err = r.Get(v.ID())
	assert.ErrorIs(t, err, ErrViewNotFound)
	assert.False(t, r.Unmount(v.ID()))
}

func TestRegistryExpire(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	r := NewViewRegistry(content.Default(content.ThemeClassic), time.Minute, 0)
	defer r.Close()

	idle := r.Mount()
	cutoff := time.Now().Add(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	active := r.Mount()
	_, err := active.HandleEvent(ui.EventScroll, "10")
	require.NoError(t, err)

	assert.Equal(t, 1, r.Expire(cutoff))
	assert.False(t, idle.Mounted())
	assert.True(t, active.Mounted())
	assert.Equal(t, 1, r.Len())
}

func TestRegistrySweeperDropsIdleViews(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	r := NewViewRegistry(content.Default(content.ThemeClassic), 20*time.Millisecond, 0)
	defer r.Close()

	v := r.Mount()
	assert.Eventually(t, func() bool { return !v.Mounted() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, r.Len())
}

func TestRegistryCloseUnmountsAll(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	r := NewViewRegistry(content.Default(content.ThemeNoir), time.Minute, 0)
	a, b := r.Mount(), r.Mount()
	r.Close()
	r.Close()
	assert.False(t, a.Mounted())
	assert.False(t, b.Mounted())
}

func TestRegistryEvictsLeastRecentlySeen(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	r := NewViewRegistry(content.Default(content.ThemeClassic), time.Minute, 3)
	defer r.Close()

	first := r.Mount()
	time.Sleep(2 * time.Millisecond)
	second := r.Mount()
	time.Sleep(2 * time.Millisecond)
	third := r.Mount()
	time.Sleep(2 * time.Millisecond)
	_, err := first.HandleEvent(ui.EventMenuToggle, "")
	require.NoError(t, err)

	fourth := r.Mount()
	assert.Equal(t, 3, r.Len())
	assert.False(t, second.Mounted())
	_, err = r.Get(second.ID())
	assert.ErrorIs(t, err, ErrViewNotFound)

	for _, v := range []*ui.View{first, third, fourth} {
		_, err := r.Get(v.ID())
		assert.NoError(t, err)
	}

	for i := 0; i < 100; i++ {
		r.Mount()
	}
	assert.Equal(t, 3, r.Len())
}

func TestRegistryPreviewIsNotHeld(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c := content.Default(content.ThemeClassic)
	r := NewViewRegistry(c, time.Minute, 0)
	defer r.Close()

	snap := r.Preview()
	assert.Empty(t, snap.ID)
	assert.Equal(t, c.HeroImage, snap.Hero.URL)
	assert.Len(t, snap.Gallery, len(c.Gallery))
	assert.Equal(t, 0, r.Len())
}
