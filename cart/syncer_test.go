package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncerRunsScheduledTask(t *testing.T) {
	s := newSyncer()

	done := make(chan struct{})
	s.schedule(func() { close(done) })
	<-done
	s.wait()
}

func TestSyncerLastQueuedWins(t *testing.T) {
	s := newSyncer()

	started := make(chan struct{})
	release := make(chan struct{})
	s.schedule(func() {
		close(started)
		<-release
	})
	<-started

	// While the first write is in flight, later writes replace each other.
	var mu sync.Mutex
	var ran []int
	for i := 1; i <= 5; i++ {
		i := i
		s.schedule(func() {
			mu.Lock()
			ran = append(ran, i)
			mu.Unlock()
		})
	}

	close(release)
	s.wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{5}, ran)
}

func TestSyncerWaitWhenIdle(t *testing.T) {
	s := newSyncer()
	// Must not block.
	s.wait()
}

func TestSyncerSequentialTasksAllRun(t *testing.T) {
	s := newSyncer()

	var mu sync.Mutex
	count := 0
	for i := 0; i < 3; i++ {
		s.schedule(func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
		s.wait()
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, count)
}
