// Package format defines the shared enumerations used across fitkit:
// the experiment mode identifiers and the curve payload compression types.
package format

import "strings"

type (
	// Mode identifies which experiment-specific fitter runs.
	Mode string

	// CompressionType selects the codec applied to encoded curve payloads.
	CompressionType uint8
)

const (
	// ModeStraightLine fits y = m*x + c by ordinary least squares.
	ModeStraightLine Mode = "straight-line"
	// ModeCMC fits two joined line segments and reports the breakpoint
	// concentration (the critical micelle concentration).
	ModeCMC Mode = "cmc"
	// ModePhotoelectricVI fits per-group voltage-current lines (experiment 1.1).
	ModePhotoelectricVI Mode = "photoelectric-1-1"
	// ModePhotoelectricH fits stopping voltage vs frequency and derives
	// Planck's constant from the slope (experiment 1.2).
	ModePhotoelectricH Mode = "photoelectric-1-2"
	// ModePhotoelectricVI3 fits per-group voltage-current lines (experiment 1.3).
	ModePhotoelectricVI3 Mode = "photoelectric-1-3"
	// ModeSingleSlit fits a sinc-squared diffraction intensity profile.
	ModeSingleSlit Mode = "single-slit"
	// ModeNewtonsRings fits ring radius squared vs ring order.
	ModeNewtonsRings Mode = "newtons-rings"
	// ModePohlsDamped fits the exponential envelope of a damped oscillation.
	ModePohlsDamped Mode = "pohls-damped"
	// ModePohlsForced fits a forced-resonance amplitude curve.
	ModePohlsForced Mode = "pohls-forced"
	// ModePolarization fits optical rotation angle vs concentration.
	ModePolarization Mode = "polarization"
	// ModeWaves fits wavelength vs inverse frequency, single series or
	// grouped by string tension.
	ModeWaves Mode = "waves"
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone leaves payloads uncompressed.
	CompressionZstd CompressionType = 0x2 // CompressionZstd applies Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 applies S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 applies LZ4 block compression.
)

// modes lists every registered mode identifier.
var modes = []Mode{
	ModeStraightLine,
	ModeCMC,
	ModePhotoelectricVI,
	ModePhotoelectricH,
	ModePhotoelectricVI3,
	ModeSingleSlit,
	ModeNewtonsRings,
	ModePohlsDamped,
	ModePohlsForced,
	ModePolarization,
	ModeWaves,
}

// Modes returns all known mode identifiers in registration order.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)

	return out
}

// ModeFromString returns the Mode for a given identifier string and whether
// the identifier is known. Matching is case-insensitive.
func ModeFromString(name string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range modes {
		if m == known {
			return known, true
		}
	}

	return "", false
}

func (m Mode) String() string {
	return string(m)
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
