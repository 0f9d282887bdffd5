package output

import "github.com/quietcore/fix15synth/fix15"

// toInt16 converts one fix15 sample to a 16-bit signed PCM sample, per
// §6's wire format. fix15's native scale (One == 1<<15) already aligns
// with int16 full scale, so the conversion clamps the raw fix15
// representation into int16 range rather than discarding its low bits
// with a shift; this also fixes the unclamped wraparound at exactly
// 1.0 that the original I2S driver left as an open question.
func toInt16(s fix15.T) int16 {
	v := int32(s)
	switch {
	case v > 32767:
		return 32767
	case v < -32768:
		return -32768
	default:
		return int16(v)
	}
}

// EncodeStereo16LE appends buf's interleaved stereo fix15 frames to dst as
// little-endian 16-bit PCM, reusing dst's backing array the way the
// teacher's FloatBufferTo16BitLE reuses its tmpBuffer.
func EncodeStereo16LE(buf []fix15.T, dst []byte) []byte {
	for _, s := range buf {
		v := uint16(toInt16(s))
		dst = append(dst, byte(v), byte(v>>8))
	}
	return dst
}

// EncodeMonoPWM16 downmixes interleaved stereo fix15 frames to mono and
// maps them into [0, wrap], the unsigned PWM duty-cycle range used by the
// 22.05 kHz PWM output path (§6). buf's length must be even.
func EncodeMonoPWM16(buf []fix15.T, wrap uint16, dst []uint16) []uint16 {
	for i := 0; i+1 < len(buf); i += 2 {
		mono := (buf[i] + buf[i+1]) >> 1
		mono = fix15.Clamp(mono, -fix15.One, fix15.One)
		normalized := fix15.ToFloat(mono+fix15.One) / 2.0
		dst = append(dst, uint16(normalized*float64(wrap)))
	}
	return dst
}
