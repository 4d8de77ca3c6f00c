package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_Present(t *testing.T) {
	f := Present("Data Scientist")

	v, ok := f.Get()
	assert.True(t, ok)
	assert.Equal(t, "Data Scientist", v)

	require.NotNil(t, f.Ptr())
	assert.Equal(t, "Data Scientist", *f.Ptr())
}

func TestField_Absent(t *testing.T) {
	f := Absent()

	_, ok := f.Get()
	assert.False(t, ok)
	assert.Nil(t, f.Ptr())
}

func TestField_PtrIsCopy(t *testing.T) {
	f := Present("a")
	p := f.Ptr()
	*p = "b"

	v, _ := f.Get()
	assert.Equal(t, "a", v)
}
