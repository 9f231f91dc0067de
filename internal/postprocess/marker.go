package postprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// MarkClick draws a crosshair of the given arm length centered on (x, y),
// leaving a one-pixel gap at the center so the clicked pixel stays visible.
func MarkClick(img *image.NRGBA, x, y, arm int, c color.NRGBA) {
	src := image.NewUniform(c)
	bars := []image.Rectangle{
		image.Rect(x-arm, y, x-1, y+1),
		image.Rect(x+2, y, x+arm+1, y+1),
		image.Rect(x, y-arm, x+1, y-1),
		image.Rect(x, y+2, x+1, y+arm+1),
	}
	for _, r := range bars {
		draw.Draw(img, r.Intersect(img.Bounds()), src, image.Point{}, draw.Src)
	}
}
