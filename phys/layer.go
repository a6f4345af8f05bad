package phys

// Layer classifies colliders for raycast filtering and form-dependent
// collision. A collider sits on exactly one layer; rays and bodies carry a
// Mask of the layers they interact with.
type Layer uint32

const (
	LayerDefault Layer = 1 << iota
	LayerGround
	LayerPlayer
	LayerMirror
	LayerReceiver
	LayerLightBarrier
	LayerShadowBarrier
	LayerTrigger
)

// Mask is a set of layers.
type Mask uint32

const MaskAll Mask = ^Mask(0)

func MaskOf(layers ...Layer) Mask {
	var m Mask
	for _, l := range layers {
		m |= Mask(l)
	}
	return m
}

func (m Mask) Contains(l Layer) bool {
	return m&Mask(l) != 0
}

func (m Mask) With(l Layer) Mask {
	return m | Mask(l)
}

func (m Mask) Without(l Layer) Mask {
	return m &^ Mask(l)
}
