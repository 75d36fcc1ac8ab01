package collision

import (
	"strconv"
	"strings"
)

// LayerMask is a bit set used to filter which colliders a query considers.
// It has no effect on the physical response.
type LayerMask uint32

const (
	NoLayers  LayerMask = 0
	AllLayers LayerMask = ^LayerMask(0)
)

// Layer returns the mask with only bit n set.
func Layer(n uint) LayerMask {
	return LayerMask(1) << n
}

// Matches reports whether m and other share at least one bit.
func (m LayerMask) Matches(other LayerMask) bool {
	return m&other != 0
}

func (m LayerMask) String() string {
	if m == NoLayers {
		return "none"
	}
	if m == AllLayers {
		return "all"
	}
	var bits []string
	for i := 0; i < 32; i++ {
		if m&(1<<i) != 0 {
			bits = append(bits, strconv.Itoa(i))
		}
	}
	return "layers(" + strings.Join(bits, ",") + ")"
}
