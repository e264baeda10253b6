package card_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/undostack/pkg/card"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	st := card.Default()

	assert.Equal(t, "YOUR NAME", st.Text)
	assert.Equal(t, "blue", st.Background)
	assert.Equal(t, 48, st.Size)
	assert.Nil(t, st.Extra)
}

func TestState_String(t *testing.T) {
	t.Parallel()

	st := card.Default()
	assert.Equal(t, "{text: YOUR NAME, bg: blue, size: 48}", st.String())

	require.NoError(t, st.Set("font", "serif"))
	require.NoError(t, st.Set("border", "none"))
	assert.Equal(t, "{text: YOUR NAME, bg: blue, size: 48, border: none, font: serif}", st.String())
}

func TestState_Set(t *testing.T) {
	t.Parallel()

	st := card.Default()

	require.NoError(t, st.Set("text", "Alice"))
	require.NoError(t, st.Set("Background", "red"))
	require.NoError(t, st.Set(" size ", "12"))

	assert.Equal(t, "Alice", st.Text)
	assert.Equal(t, "red", st.Background)
	assert.Equal(t, 12, st.Size)

	require.NoError(t, st.Set("bg", "gradient(blue, purple)"))
	assert.Equal(t, "gradient(blue, purple)", st.Background)
}

func TestState_SetErrors(t *testing.T) {
	t.Parallel()

	st := card.Default()

	require.ErrorIs(t, st.Set("", "x"), card.ErrEmptyField)
	require.ErrorIs(t, st.Set("size", "big"), card.ErrInvalidSize)
	require.ErrorIs(t, st.Set("size", "-1"), card.ErrInvalidSize)
	assert.Equal(t, 48, st.Size, "failed set must not change the card")
}

func TestState_Get(t *testing.T) {
	t.Parallel()

	st := card.Default()
	require.NoError(t, st.Set("font", "serif"))

	val, ok := st.Get("size")
	assert.True(t, ok)
	assert.Equal(t, "48", val)

	val, ok = st.Get("background")
	assert.True(t, ok)
	assert.Equal(t, "blue", val)

	val, ok = st.Get("font")
	assert.True(t, ok)
	assert.Equal(t, "serif", val)

	_, ok = st.Get("missing")
	assert.False(t, ok)
}

func TestState_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	orig := card.Default()
	require.NoError(t, orig.Set("font", "serif"))

	cp := orig.Clone()
	require.True(t, cp.Equal(orig))

	require.NoError(t, orig.Set("font", "mono"))
	orig.Text = "Bob"

	val, _ := cp.Get("font")
	assert.Equal(t, "serif", val)
	assert.Equal(t, "YOUR NAME", cp.Text)
	assert.False(t, cp.Equal(orig))
}

func TestState_EqualNilAndEmptyExtra(t *testing.T) {
	t.Parallel()

	a := card.Default()
	b := card.Default()
	b.Extra = map[string]string{}

	assert.True(t, a.Equal(b))
}
