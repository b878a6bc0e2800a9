package colorspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSRGBIsValid(t *testing.T) {
	assert.True(t, SRGB(false).IsValid())
	assert.True(t, SRGB(true).IsValid())
}

func TestFromICCValidity(t *testing.T) {
	assert.False(t, FromICC(nil).IsValid())
	assert.True(t, FromICC([]byte{1, 2, 3}).IsValid())
}

func TestStandardPrimariesUnknownCustom(t *testing.T) {
	_, _, _, ok := StandardPrimaries(PrimariesCustom)
	assert.False(t, ok)
}

func TestMatchStructuredRecognizesSRGB(t *testing.T) {
	red, green, blue, ok := StandardPrimaries(PrimariesSRGB)
	assert.True(t, ok)
	p, matched := MatchStructured(red, green, blue, D65)
	assert.True(t, matched)
	assert.Equal(t, PrimariesSRGB, p)
}

func TestMatchStructuredRejectsUnknownGamut(t *testing.T) {
	_, matched := MatchStructured(Chromaticity{0.1, 0.1}, Chromaticity{0.2, 0.2}, Chromaticity{0.3, 0.3}, D65)
	assert.False(t, matched)
}

func TestBT2020LinearVsGamma(t *testing.T) {
	linear := BT2020(true)
	gamma := BT2020(false)
	assert.Equal(t, TransferLinear, linear.Transfer)
	assert.Equal(t, TransferGamma, gamma.Transfer)
	assert.InDelta(t, 1.0/2.4, gamma.Gamma, 1e-9)
}
