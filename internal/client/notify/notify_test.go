package notify

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDrain_PreservesPostedOrder(t *testing.T) {
	h := NewHub(0)
	h.Info("one")
	h.Error("two")
	h.Info("three")

	got := h.Drain()
	require.Len(t, got, 3)
	require.Equal(t, "one", got[0].Message)
	require.Equal(t, SeverityInfo, got[0].Severity)
	require.Equal(t, "two", got[1].Message)
	require.Equal(t, SeverityError, got[1].Severity)
	require.Equal(t, "three", got[2].Message)

	require.Empty(t, h.Drain())
}

func TestOverflow_DropsOldest(t *testing.T) {
	h := NewHub(2)
	h.Info("a")
	h.Info("b")
	h.Info("c")

	got := h.Drain()
	require.Len(t, got, 2)
	require.Equal(t, "b", got[0].Message)
	require.Equal(t, "c", got[1].Message)
}

func TestPost_ConcurrentSafe(t *testing.T) {
	h := NewHub(1000)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				h.Info(fmt.Sprintf("msg-%d-%d", n, j))
			}
		}(i)
	}
	wg.Wait()
	require.Equal(t, 500, h.Pending())
}

func TestNotificationsHaveUniqueIDs(t *testing.T) {
	h := NewHub(0)
	h.Info("a")
	h.Info("b")
	got := h.Drain()
	require.NotEqual(t, got[0].ID, got[1].ID)
	require.False(t, got[0].At.IsZero())
}
