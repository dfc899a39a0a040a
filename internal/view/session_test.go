package view

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distviz/domain/core"
)

func TestStoreGet(t *testing.T) {
	st := NewStore(time.Minute, nil)

	sess, created := st.Get("")
	require.True(t, created)
	require.NotNil(t, sess)
	assert.False(t, sess.ID.IsEmpty())

	again, created := st.Get(sess.ID)
	assert.False(t, created)
	assert.Same(t, sess, again)

	other, created := st.Get(core.NewSessionID())
	assert.True(t, created)
	assert.NotEqual(t, sess.ID, other.ID)
	assert.Equal(t, 2, st.Len())
}

func TestStoreEvict(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	st := NewStore(10*time.Minute, nil)
	st.now = func() time.Time { return now }

	idle, _ := st.Get("")
	now = now.Add(8 * time.Minute)
	active, _ := st.Get("")

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 1, st.Evict())
	assert.Equal(t, 1, st.Len())

	_, created := st.Get(active.ID)
	assert.False(t, created)
	_, created = st.Get(idle.ID)
	assert.True(t, created)
}

func TestStoreRunStopsOnCancel(t *testing.T) {
	st := NewStore(time.Minute, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- st.Run(ctx, time.Millisecond) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestSessionWithSerializes(t *testing.T) {
	c := newCoordinator()
	st := NewStore(time.Minute, nil)
	sess, _ := st.Get("")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess.With(func(s *State) {
				_ = c.Select(s, "continuous", "norm")
			})
		}()
	}
	wg.Wait()

	sess.With(func(s *State) {
		assert.Equal(t, 8, s.Evaluations())
	})
}
