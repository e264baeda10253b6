package stack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/undostack/pkg/stack"
)

func TestStack_LenAfterPushes(t *testing.T) {
	t.Parallel()

	for _, count := range []int{0, 1, 2, 17, 100} {
		st := stack.New[int]()

		for i := range count {
			st.Push(i)
		}

		assert.Equal(t, count, st.Len())
		assert.Equal(t, count == 0, st.IsEmpty())
	}
}

func TestStack_PopEmpty(t *testing.T) {
	t.Parallel()

	st := stack.New[string]()

	item, err := st.Pop()
	require.ErrorIs(t, err, stack.ErrEmptyStack)
	assert.Empty(t, item)
	assert.Equal(t, 0, st.Len())
}

func TestStack_ZeroValueUsable(t *testing.T) {
	t.Parallel()

	var st stack.Stack[int]

	assert.True(t, st.IsEmpty())

	st.Push(7)

	got, err := st.Pop()
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestStack_LIFOOrder(t *testing.T) {
	t.Parallel()

	st := stack.New[string]()
	st.Push("a")
	st.Push("b")
	st.Push("c")

	for _, want := range []string{"c", "b", "a"} {
		got, err := st.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := st.Pop()
	require.ErrorIs(t, err, stack.ErrEmptyStack)
}

func TestStack_Peek(t *testing.T) {
	t.Parallel()

	st := stack.New[int]()

	_, ok := st.Peek()
	assert.False(t, ok)

	st.Push(1)
	st.Push(2)

	top, ok := st.Peek()
	require.True(t, ok)
	assert.Equal(t, 2, top)
	assert.Equal(t, 2, st.Len(), "peek must not remove")
}

func TestStack_Clear(t *testing.T) {
	t.Parallel()

	st := stack.New[int]()
	st.Push(1)
	st.Push(2)
	st.Clear()

	assert.True(t, st.IsEmpty())

	st.Push(3)

	top, ok := st.Peek()
	require.True(t, ok)
	assert.Equal(t, 3, top)
}

func TestStack_DropBottom(t *testing.T) {
	t.Parallel()

	st := stack.New[int]()
	for i := range 5 {
		st.Push(i)
	}

	assert.Equal(t, 0, st.DropBottom(0))
	assert.Equal(t, 2, st.DropBottom(2))
	assert.Equal(t, []int{2, 3, 4}, st.Items())

	assert.Equal(t, 3, st.DropBottom(10))
	assert.True(t, st.IsEmpty())
}

func TestStack_ItemsIsCopy(t *testing.T) {
	t.Parallel()

	st := stack.New[int]()
	st.Push(1)
	st.Push(2)

	items := st.Items()
	items[0] = 99

	assert.Equal(t, []int{1, 2}, st.Items())
}
