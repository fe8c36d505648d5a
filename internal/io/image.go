package ioutils

import (
	"bytes"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
)

// ResizeJPEG scales a JPEG preview down to fit within maxWidth by
// maxHeight and re-encodes it.
//
// The aspect ratio is preserved; an image already inside the bounds is
// re-encoded without scaling. Catmull-Rom is used for quality, which
// matters at thumbnail sizes.
//
// Used to derive the thumbnail embedded in the output DNG from the
// RAW file's preview image.
func ResizeJPEG(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}

		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
