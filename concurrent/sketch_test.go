package concurrent

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowsketch/hll"
)

func Test_ConcurrentAdds_Sum(t *testing.T) {
	s, err := New(hll.Options{Precision: 12})
	require.NoError(t, err)

	const goroutines = 10
	const perGoroutine = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				_, err := s.Add([]byte(fmt.Sprintf("g%d-v%d", g, i)))
				assert.NoError(t, err)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, uint64(goroutines*perGoroutine), s.CountAdditions())

	count, err := s.Count()
	require.NoError(t, err)

	trueCardinality := float64(goroutines * perGoroutine)
	assert.InEpsilon(t, trueCardinality, float64(count), 0.05)
}

func Test_Merge_SelfIsNoOp(t *testing.T) {
	s, err := New(hll.Options{Precision: 10})
	require.NoError(t, err)
	_, err = s.Add([]byte("x"))
	require.NoError(t, err)

	require.NoError(t, s.Merge(s))

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func Test_Merge_LockOrderingIsDeadlockFree(t *testing.T) {
	a, err := New(hll.Options{Precision: 10})
	require.NoError(t, err)
	b, err := New(hll.Options{Precision: 10})
	require.NoError(t, err)

	_, err = a.Add([]byte("a"))
	require.NoError(t, err)
	_, err = b.Add([]byte("b"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = a.Merge(b)
	}()
	go func() {
		defer wg.Done()
		_ = b.Merge(a)
	}()
	wg.Wait()
}

func Test_Merge_PropagatesAdditions(t *testing.T) {
	a, err := New(hll.Options{Precision: 10})
	require.NoError(t, err)
	b, err := New(hll.Options{Precision: 10})
	require.NoError(t, err)

	_, err = a.Add([]byte("1"))
	require.NoError(t, err)
	_, err = b.Add([]byte("2"))
	require.NoError(t, err)
	_, err = b.Add([]byte("3"))
	require.NoError(t, err)

	require.NoError(t, a.Merge(b))
	assert.Equal(t, uint64(3), a.CountAdditions())
}

func Test_Dispose_IsIdempotent(t *testing.T) {
	s, err := New(hll.Options{Precision: 10})
	require.NoError(t, err)

	require.NoError(t, s.Dispose())
	require.NoError(t, s.Dispose())
}

func Test_Dispose_RejectsSubsequentOperations(t *testing.T) {
	s, err := New(hll.Options{Precision: 10})
	require.NoError(t, err)
	require.NoError(t, s.Dispose())

	_, err = s.Add([]byte("x"))
	assert.ErrorIs(t, err, ErrDisposed)

	_, err = s.Count()
	assert.ErrorIs(t, err, ErrDisposed)

	_, err = s.CloneSnapshot()
	assert.ErrorIs(t, err, ErrDisposed)

	other, err := New(hll.Options{Precision: 10})
	require.NoError(t, err)
	assert.ErrorIs(t, s.Merge(other), ErrDisposed)
	assert.ErrorIs(t, other.Merge(s), ErrDisposed)
}

func Test_CloneSnapshot_IsIndependent(t *testing.T) {
	s, err := New(hll.Options{Precision: 10, DirectCounting: true})
	require.NoError(t, err)
	_, err = s.Add([]byte("x"))
	require.NoError(t, err)

	snap, err := s.CloneSnapshot()
	require.NoError(t, err)

	_, err = s.Add([]byte("y"))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), snap.Count())

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}
