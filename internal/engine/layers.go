package engine

// Layers is a 32-bit membership mask. Two masks match when they share a bit.
type Layers uint32

const (
	LayerDefault         = 0
	LayerCameraCollision = 1
)

// DefaultLayers is the mask new GameObjects start with.
const DefaultLayers Layers = 1 << LayerDefault

// LayerBit returns the mask with only the given layer set.
func LayerBit(layer int) Layers {
	return 1 << uint(layer)
}

// Set replaces the mask with the single given layer.
func (l *Layers) Set(layer int) {
	*l = LayerBit(layer)
}

func (l *Layers) Enable(layer int) {
	*l |= LayerBit(layer)
}

func (l *Layers) Disable(layer int) {
	*l &^= LayerBit(layer)
}

func (l Layers) Has(layer int) bool {
	return l&LayerBit(layer) != 0
}

// Test reports whether the masks share any layer.
func (l Layers) Test(other Layers) bool {
	return l&other != 0
}

func (l Layers) Mask() uint32 {
	return uint32(l)
}
