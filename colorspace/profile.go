// Package colorspace is the ICC/QColorSpace stand-in: a small tagged union
// between "structured" primaries/whitepoint/transfer descriptions (the ones
// libjxl and the host framework can both name without shipping bytes) and
// opaque ICC profile blobs for everything else.
package colorspace

import "strings"

// Kind discriminates the two ways a Profile can describe a color space.
type Kind int

const (
	// KindICC carries an opaque ICC profile blob (ISO 15076-1).
	KindICC Kind = iota
	// KindStructured names primaries/whitepoint/transfer directly.
	KindStructured
)

// Model is the reduced color model a Profile describes: RGB, gray, or
// CMYK. It is what CMYK detection gates on, rather than any incidental
// extra-channel layout.
type Model int

const (
	ModelUnknown Model = iota
	ModelRGB
	ModelGray
	ModelCMYK
)

// Primaries identifies a named RGB primary set.
type Primaries int

const (
	PrimariesSRGB Primaries = iota
	PrimariesAdobeRGB
	PrimariesDCIP3D65
	PrimariesProPhotoRGB
	PrimariesBT2020
	PrimariesCustom
)

// WhitePoint identifies a named reference white.
type WhitePoint int

const (
	WhitePointD65 WhitePoint = iota
	WhitePointCustom
)

// TransferFunction identifies the opto-electronic transfer function.
type TransferFunction int

const (
	TransferSRGB TransferFunction = iota
	TransferLinear
	TransferGamma
)

// Chromaticity is a CIE xy chromaticity coordinate pair.
type Chromaticity struct{ X, Y float64 }

// Profile is either a structured named color space or an ICC blob. Gray
// marks a one-channel structured profile (only meaningful when
// Kind == KindStructured). Model is set on every constructor here: for
// KindStructured it follows Gray, for KindICC it is read from the
// profile's data color space signature.
type Profile struct {
	Kind  Kind
	Model Model

	// KindStructured fields.
	Primaries    Primaries
	WhitePoint   WhitePoint
	WhitePointXY Chromaticity
	RedXY        Chromaticity
	GreenXY      Chromaticity
	BlueXY       Chromaticity
	Transfer     TransferFunction
	Gamma        float64 // meaningful when Transfer == TransferGamma
	Gray         bool

	// KindICC fields.
	ICC []byte
}

// rgbOrGray returns the structured Model for a one- or three-channel
// profile.
func rgbOrGray(gray bool) Model {
	if gray {
		return ModelGray
	}
	return ModelRGB
}

// modelFromICC reads the data color space signature at byte offset 16 of
// an ICC profile header (ICC.1:2010 §7.2.6) and maps the ones this codec
// cares about to a Model; anything else (Lab, XYZ, ...) is ModelUnknown.
func modelFromICC(data []byte) Model {
	if len(data) < 20 {
		return ModelUnknown
	}
	switch strings.TrimRight(string(data[16:20]), " ") {
	case "RGB":
		return ModelRGB
	case "GRAY":
		return ModelGray
	case "CMYK":
		return ModelCMYK
	default:
		return ModelUnknown
	}
}

// IsValid reports whether the profile carries usable data: a non-empty ICC
// blob, or a structured profile (structured profiles are always valid once
// constructed by this package's helpers).
func (p Profile) IsValid() bool {
	if p.Kind == KindICC {
		return len(p.ICC) > 0
	}
	return true
}

// SRGB returns the structured sRGB color space, optionally as its
// single-channel grayscale variant.
func SRGB(gray bool) Profile {
	return Profile{
		Kind:       KindStructured,
		Model:      rgbOrGray(gray),
		Primaries:  PrimariesSRGB,
		WhitePoint: WhitePointD65,
		Transfer:   TransferSRGB,
		Gray:       gray,
	}
}

// LinearSRGB returns the sRGB primaries under a linear transfer function,
// the color space PFM pixel data is defined to carry.
func LinearSRGB() Profile {
	return Profile{
		Kind:       KindStructured,
		Model:      ModelRGB,
		Primaries:  PrimariesSRGB,
		WhitePoint: WhitePointD65,
		Transfer:   TransferLinear,
	}
}

// AdobeRGB returns the structured Adobe RGB (1998) color space.
func AdobeRGB() Profile {
	return Profile{
		Kind:       KindStructured,
		Model:      ModelRGB,
		Primaries:  PrimariesAdobeRGB,
		WhitePoint: WhitePointD65,
		Transfer:   TransferGamma,
		Gamma:      1.0 / 2.19921875,
	}
}

// DCIP3D65 returns the structured Display P3 (D65 white point) color space.
func DCIP3D65() Profile {
	return Profile{
		Kind:       KindStructured,
		Model:      ModelRGB,
		Primaries:  PrimariesDCIP3D65,
		WhitePoint: WhitePointD65,
		Transfer:   TransferSRGB,
	}
}

// ProPhotoRGB returns the structured ProPhoto RGB color space.
func ProPhotoRGB() Profile {
	return Profile{
		Kind:       KindStructured,
		Model:      ModelRGB,
		Primaries:  PrimariesProPhotoRGB,
		WhitePoint: WhitePointD65,
		Transfer:   TransferGamma,
		Gamma:      1.0 / 1.8,
	}
}

// BT2020 returns the structured ITU-R BT.2020 (Rec. 2020) color space.
func BT2020(linear bool) Profile {
	transfer := TransferGamma
	gamma := 1.0 / 2.4
	if linear {
		transfer = TransferLinear
		gamma = 0
	}
	return Profile{
		Kind:       KindStructured,
		Model:      ModelRGB,
		Primaries:  PrimariesBT2020,
		WhitePoint: WhitePointD65,
		Transfer:   transfer,
		Gamma:      gamma,
	}
}

// FromICC wraps a raw ICC profile blob, reading its data color space
// signature into Model so CMYK detection can gate on it.
func FromICC(data []byte) Profile {
	return Profile{Kind: KindICC, ICC: data, Model: modelFromICC(data)}
}

// primaryTable gives the named CIE xy coordinates libjxl and the structured
// encoders below both key off, per the standard chromaticities for each
// gamut.
var primaryTable = map[Primaries][3]Chromaticity{
	PrimariesSRGB:        {{0.640, 0.330}, {0.300, 0.600}, {0.150, 0.060}},
	PrimariesAdobeRGB:    {{0.640, 0.330}, {0.210, 0.710}, {0.150, 0.060}},
	PrimariesDCIP3D65:    {{0.680, 0.320}, {0.265, 0.690}, {0.150, 0.060}},
	PrimariesProPhotoRGB: {{0.7347, 0.2653}, {0.1596, 0.8404}, {0.0366, 0.0001}},
	PrimariesBT2020:      {{0.708, 0.292}, {0.170, 0.797}, {0.131, 0.046}},
}

// D65 is the CIE xy coordinate of the D65 standard illuminant.
var D65 = Chromaticity{X: 0.3127, Y: 0.3290}

// StandardPrimaries returns the RGB chromaticity triple for a named gamut,
// and ok=false for PrimariesCustom (the caller supplies its own).
func StandardPrimaries(p Primaries) (red, green, blue Chromaticity, ok bool) {
	t, ok := primaryTable[p]
	if !ok {
		return Chromaticity{}, Chromaticity{}, Chromaticity{}, false
	}
	return t[0], t[1], t[2], true
}

// MatchStructured attempts to recognize red/green/blue/white chromaticities
// (within tolerance) as one of the named gamuts above, mirroring the
// encoder's "try structured encoding first" fallback chain.
func MatchStructured(red, green, blue, white Chromaticity) (Primaries, bool) {
	const tol = 0.001
	close := func(a, b Chromaticity) bool {
		dx, dy := a.X-b.X, a.Y-b.Y
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		return dx < tol && dy < tol
	}
	if !close(white, D65) {
		return 0, false
	}
	for _, p := range []Primaries{PrimariesSRGB, PrimariesAdobeRGB, PrimariesDCIP3D65, PrimariesProPhotoRGB, PrimariesBT2020} {
		t := primaryTable[p]
		if close(red, t[0]) && close(green, t[1]) && close(blue, t[2]) {
			return p, true
		}
	}
	return 0, false
}
