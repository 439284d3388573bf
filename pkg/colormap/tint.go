package colormap

// TintAmount is added per channel when debug tinting is on.
const TintAmount = 50

// Tint biases c by the low three bits of the worker id: bit 0 adds red,
// bit 1 green, bit 2 blue. Channels saturate at 255.
func Tint(c Color, worker int) Color {
	if worker&1 != 0 {
		c.R = addSat(c.R, TintAmount)
	}
	if worker&2 != 0 {
		c.G = addSat(c.G, TintAmount)
	}
	if worker&4 != 0 {
		c.B = addSat(c.B, TintAmount)
	}
	return c
}

func addSat(a, b uint8) uint8 {
	if s := uint16(a) + uint16(b); s < 255 {
		return uint8(s)
	}
	return 255
}
