package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_Name(t *testing.T) {
	d := NewDetector()

	name, ok := d.Name("The quick brown fox jumps over the lazy dog and keeps running through the forest.")
	require.True(t, ok)
	assert.Equal(t, "English", name)

	name, ok = d.Name("Le renard brun saute par-dessus le chien paresseux et continue de courir dans la forêt.")
	require.True(t, ok)
	assert.Equal(t, "French", name)
}
