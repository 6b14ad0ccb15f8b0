package weight_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evbdd/qsim/weight"
)

func TestReservedHandles(t *testing.T) {
	tab := weight.NewTable(64, 1e-12)

	h, err := tab.Lookup(weight.Complex{Re: 0, Im: 0})
	require.NoError(t, err)
	require.Equal(t, weight.Zero, h)

	h, err = tab.Lookup(weight.Complex{Re: 1, Im: 0})
	require.NoError(t, err)
	require.Equal(t, weight.One, h)

	h, err = tab.Lookup(weight.Complex{Re: -1, Im: 0})
	require.NoError(t, err)
	require.Equal(t, weight.MinusOne, h)

	require.Equal(t, 3, tab.Entries())
}

func TestLookupInternsAndDeduplicates(t *testing.T) {
	tab := weight.NewTable(64, 1e-9)

	c := weight.Complex{Re: 0.70710678, Im: 0.1}
	h1, err := tab.Lookup(c)
	require.NoError(t, err)

	h2, err := tab.Lookup(weight.Complex{Re: 0.70710678 + 1e-12, Im: 0.1 - 1e-12})
	require.NoError(t, err)
	require.Equal(t, h1, h2, "tolerance-equal values must collapse to one handle")

	h3, err := tab.Lookup(weight.Complex{Re: 0.70710678 + 1e-3, Im: 0.1})
	require.NoError(t, err)
	require.NotEqual(t, h1, h3, "values outside tolerance must get distinct handles")
}

func TestValueRoundTrip(t *testing.T) {
	tab := weight.NewTable(64, 1e-9)
	c := weight.Complex{Re: 0.3, Im: -0.4}
	h, err := tab.Lookup(c)
	require.NoError(t, err)

	got, err := tab.Value(h)
	require.NoError(t, err)
	require.Equal(t, c, got)
}

func TestValueInvalidHandle(t *testing.T) {
	tab := weight.NewTable(8, 1e-9)
	_, err := tab.Value(weight.Handle(7))
	require.ErrorIs(t, err, weight.ErrInvalidHandle)
	_, err = tab.Value(weight.Handle(1000))
	require.ErrorIs(t, err, weight.ErrInvalidHandle)
}

func TestTableFullReportsError(t *testing.T) {
	tab := weight.NewTable(weight.HandleCount+2, 1e-9)

	_, err := tab.Lookup(weight.Complex{Re: 0.11, Im: 0})
	require.NoError(t, err)
	_, err = tab.Lookup(weight.Complex{Re: 0.22, Im: 0})
	require.NoError(t, err)

	_, err = tab.Lookup(weight.Complex{Re: 0.33, Im: 0})
	require.ErrorIs(t, err, weight.ErrTableFull)
}

func TestConcurrentLookupConverges(t *testing.T) {
	tab := weight.NewTable(4096, 1e-9)
	c := weight.Complex{Re: 0.123456, Im: -0.654321}

	const goroutines = 64
	handles := make([]weight.Handle, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			h, err := tab.Lookup(c)
			require.NoError(t, err)
			handles[i] = h
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		require.Equal(t, handles[0], handles[i], "concurrent inserts of the same value must converge")
	}
}

func TestRebuildAndRelocate(t *testing.T) {
	old := weight.NewTable(32, 1e-9)
	c := weight.Complex{Re: 0.5, Im: 0.5}
	oldHandle, err := old.Lookup(c)
	require.NoError(t, err)

	fresh := old.Rebuild(64)
	newHandle, err := fresh.Relocate(old, oldHandle)
	require.NoError(t, err)

	got, err := fresh.Value(newHandle)
	require.NoError(t, err)
	require.Equal(t, c, got)

	// Reserved handles relocate to themselves at the same numeric value.
	rz, err := fresh.Relocate(old, weight.Zero)
	require.NoError(t, err)
	require.Equal(t, weight.Zero, rz)
}
