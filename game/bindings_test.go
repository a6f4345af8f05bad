package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindingsPress(t *testing.T) {
	b := DefaultBindings()

	var in Input
	b.Press(&in, "space")
	assert.True(t, in.Jump)

	b.Press(&in, "q")
	assert.True(t, in.ToggleForm)

	b.Press(&in, "left")
	assert.Equal(t, 1.0, in.MirrorRotate)
	b.Press(&in, "right")
	assert.Equal(t, -1.0, in.MirrorRotate)

	b.Press(&in, "r")
	assert.True(t, in.DebugReset)
	b.Press(&in, "l")
	assert.True(t, in.Quit)
}

func TestBindingsUnknownKeyNoOps(t *testing.T) {
	b := DefaultBindings()
	var in Input
	b.Press(&in, "banana")
	assert.Equal(t, Input{}, in)
}
