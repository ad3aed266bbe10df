package frame

import "math"

// lanczosA is the Lanczos kernel's support radius (Lanczos-3).
const lanczosA = 3

// lanczosKernel evaluates the normalized sinc-windowed-sinc Lanczos-3 kernel
// at distance x. golang.org/x/image/draw ships NearestNeighbor, ApproxBiLinear,
// BiLinear and CatmullRom scalers but no Lanczos variant, so the kernel and
// the two-pass separable resampler below are implemented directly.
func lanczosKernel(x float64) float64 {
	if x == 0 {
		return 1
	}
	if x < -lanczosA || x > lanczosA {
		return 0
	}
	piX := math.Pi * x
	return lanczosA * math.Sin(piX) * math.Sin(piX/lanczosA) / (piX * piX)
}

// lanczosResize resamples img to (dstW, dstH) using a separable Lanczos-3
// filter: one horizontal pass followed by one vertical pass, each computed
// in float64 and clamped back to byte range.
func lanczosResize(img Image, dstW, dstH int) Image {
	if dstW <= 0 {
		dstW = 1
	}
	if dstH <= 0 {
		dstH = 1
	}

	horizontal := resampleAxis(img.Pixels, img.Width, img.Height, img.Channels, dstW, true)
	vertical := resampleAxis(horizontal, dstW, img.Height, img.Channels, dstH, false)

	return Image{Width: dstW, Height: dstH, Channels: img.Channels, Pixels: vertical}
}

// resampleAxis resamples along the width axis (horizontal=true, output width
// changes to dstLen) or the height axis (horizontal=false, output height
// changes to dstLen).
func resampleAxis(src []byte, w, h, channels, dstLen int, horizontal bool) []byte {
	srcLen := w
	if !horizontal {
		srcLen = h
	}
	scale := float64(srcLen) / float64(dstLen)
	// When upsampling, keep the filter's native radius; when downsampling,
	// widen it proportionally so every source sample is still weighted.
	filterScale := scale
	if filterScale < 1 {
		filterScale = 1
	}
	radius := lanczosA * filterScale

	var outW, outH int
	if horizontal {
		outW, outH = dstLen, h
	} else {
		outW, outH = w, dstLen
	}
	out := make([]byte, outW*outH*channels)

	for dst := 0; dst < dstLen; dst++ {
		center := (float64(dst)+0.5)*scale - 0.5
		lo := int(math.Floor(center - radius))
		hi := int(math.Ceil(center + radius))
		if lo < 0 {
			lo = 0
		}
		if hi > srcLen-1 {
			hi = srcLen - 1
		}

		weights := make([]float64, hi-lo+1)
		var weightSum float64
		for s := lo; s <= hi; s++ {
			wgt := lanczosKernel((float64(s) - center) / filterScale)
			weights[s-lo] = wgt
			weightSum += wgt
		}
		if weightSum == 0 {
			weightSum = 1
		}

		if horizontal {
			for y := 0; y < h; y++ {
				for ch := 0; ch < channels; ch++ {
					var acc float64
					for s := lo; s <= hi; s++ {
						acc += float64(src[(y*w+s)*channels+ch]) * weights[s-lo]
					}
					out[(y*outW+dst)*channels+ch] = clampByte(acc / weightSum)
				}
			}
		} else {
			for x := 0; x < w; x++ {
				for ch := 0; ch < channels; ch++ {
					var acc float64
					for s := lo; s <= hi; s++ {
						acc += float64(src[(s*w+x)*channels+ch]) * weights[s-lo]
					}
					out[(dst*outW+x)*channels+ch] = clampByte(acc / weightSum)
				}
			}
		}
	}

	return out
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v + 0.5)
}
