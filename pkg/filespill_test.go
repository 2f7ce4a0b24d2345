package pkg

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileSpill(t *testing.T) {
	t.Run("NewFileSpill", func(t *testing.T) {
		spill, err := NewFileSpill[int]()
		require.NoError(t, err)
		require.NotNil(t, spill)
		require.Contains(t, spill.Path(), "winnow-spill")
		defer spill.Close()
	})

	t.Run("Len returns correct count", func(t *testing.T) {
		spill, err := NewFileSpill[int]()
		require.NoError(t, err)
		defer spill.Close()

		require.Equal(t, uint64(0), spill.Len())

		require.NoError(t, spill.Append(1))
		require.Equal(t, uint64(1), spill.Len())

		require.NoError(t, spill.Append(2))
		require.NoError(t, spill.Append(3))
		require.Equal(t, uint64(3), spill.Len())
	})

	t.Run("AppendBatch adds multiple items", func(t *testing.T) {
		spill, err := NewFileSpill[string]()
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.AppendBatch([]string{"a", "b", "c"}))
		require.Equal(t, uint64(3), spill.Len())
	})

	t.Run("Range visits items in append order", func(t *testing.T) {
		spill, err := NewFileSpill[string]()
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.AppendBatch([]string{"first", "second", "third"}))

		var got []string
		err = spill.Range(func(index uint64, item string) error {
			require.Equal(t, uint64(len(got)), index)
			got = append(got, item)
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, []string{"first", "second", "third"}, got)
	})

	t.Run("Range stops on callback error", func(t *testing.T) {
		spill, err := NewFileSpill[int]()
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.AppendBatch([]int{1, 2, 3}))

		boom := errors.New("boom")
		visited := 0

		err = spill.Range(func(_ uint64, _ int) error {
			visited++
			if visited == 2 {
				return boom
			}
			return nil
		})
		require.ErrorIs(t, err, boom)
		require.Equal(t, 2, visited)
	})

	t.Run("Range on empty spill", func(t *testing.T) {
		spill, err := NewFileSpill[int]()
		require.NoError(t, err)
		defer spill.Close()

		err = spill.Range(func(uint64, int) error {
			t.Fatal("callback must not run")
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("Append while a Range is possible", func(t *testing.T) {
		spill, err := NewFileSpill[int]()
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.Append(1))
		require.NoError(t, spill.Range(func(uint64, int) error { return nil }))
		require.NoError(t, spill.Append(2))
		require.Equal(t, uint64(2), spill.Len())
	})

	t.Run("Close removes the backing file", func(t *testing.T) {
		spill, err := NewFileSpill[int]()
		require.NoError(t, err)

		path := spill.Path()
		require.NoError(t, spill.Close())

		_, err = os.Stat(path)
		require.True(t, os.IsNotExist(err))

		// Close is idempotent.
		require.NoError(t, spill.Close())
	})

	t.Run("Struct payloads round-trip", func(t *testing.T) {
		type payload struct {
			Name  string
			Count int
		}

		spill, err := NewFileSpill[payload]()
		require.NoError(t, err)
		defer spill.Close()

		want := payload{Name: "x", Count: 7}
		require.NoError(t, spill.Append(want))

		err = spill.Range(func(_ uint64, item payload) error {
			require.Equal(t, want, item)
			return nil
		})
		require.NoError(t, err)
	})
}
