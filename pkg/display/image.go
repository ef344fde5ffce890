package display

import (
	"image"

	"github.com/thelolagemann/gbmem/internal/lcd"
	"golang.org/x/image/draw"
)

// Image converts a frame to an image.
func Image(frame []byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, lcd.ScreenWidth, lcd.ScreenHeight))
	for i := 0; i < lcd.ScreenWidth*lcd.ScreenHeight; i++ {
		img.Pix[i*4] = frame[i*3]
		img.Pix[i*4+1] = frame[i*3+1]
		img.Pix[i*4+2] = frame[i*3+2]
		img.Pix[i*4+3] = 0xFF
	}
	return img
}

// Scale scales img by factor with nearest neighbour sampling, so
// that the pixels stay sharp.
func Scale(img image.Image, factor float64) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(b.Dx())*factor), int(float64(b.Dy())*factor)))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
