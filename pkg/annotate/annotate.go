// Package annotate draws pose overlays onto a copy of a request image.
package annotate

import (
	"PoseVision/internal/entity"
	"PoseVision/pkg/landmark"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type Style struct {
	Skeleton    color.RGBA
	Joint       color.RGBA
	Measurement color.RGBA
	Label       color.RGBA
	JointRadius int
	Thickness   int
}

// DefaultStyle mirrors the drawing spec of the model's reference renderer:
// red connection lines, green joints, white measurement overlays.
func DefaultStyle() Style {
	return Style{
		Skeleton:    color.RGBA{R: 255, A: 255},
		Joint:       color.RGBA{G: 255, A: 255},
		Measurement: color.RGBA{R: 255, G: 255, A: 255},
		Label:       color.RGBA{R: 255, G: 255, B: 255, A: 255},
		JointRadius: 3,
		Thickness:   2,
	}
}

// Draw renders skeleton connections, joints and measurement overlays onto a
// fresh RGBA copy. The input image is never mutated.
func Draw(img image.Image, keypoints []entity.Keypoint, measurements []entity.Measurement, style Style) *image.RGBA {
	bounds := img.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, img, bounds.Min, draw.Src)

	width := bounds.Dx()
	height := bounds.Dy()

	byIndex := make(map[int]entity.Keypoint, len(keypoints))
	for _, kp := range keypoints {
		byIndex[kp.Index] = kp
	}

	for _, conn := range landmark.Connections {
		a, okA := byIndex[conn[0]]
		b, okB := byIndex[conn[1]]
		if !okA || !okB {
			continue
		}
		drawLine(canvas,
			pixelX(a.X, width), pixelY(a.Y, height),
			pixelX(b.X, width), pixelY(b.Y, height),
			style.Skeleton, style.Thickness)
	}

	for _, kp := range keypoints {
		fillCircle(canvas, pixelX(kp.X, width), pixelY(kp.Y, height), style.JointRadius, style.Joint)
	}

	for _, m := range measurements {
		drawLine(canvas, m.From.X, m.From.Y, m.To.X, m.To.Y, style.Measurement, 1)
		label := fmt.Sprintf("%dpx", int(math.Round(m.DistancePixels)))
		drawLabel(canvas, (m.From.X+m.To.X)/2, (m.From.Y+m.To.Y)/2, label, style.Label)
	}

	summary := fmt.Sprintf("keypoints: %d  measurements: %d", len(keypoints), len(measurements))
	drawLabel(canvas, 10, 20, summary, style.Label)

	return canvas
}

func pixelX(norm float64, width int) int {
	return int(math.Round(norm * float64(width)))
}

func pixelY(norm float64, height int) int {
	return int(math.Round(norm * float64(height)))
}

func setPixelBlock(img *image.RGBA, x, y, thickness int, col color.Color) {
	bounds := img.Bounds()
	for dy := 0; dy < thickness; dy++ {
		for dx := 0; dx < thickness; dx++ {
			px := x + dx
			py := y + dy
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				img.Set(px, py, col)
			}
		}
	}
}

func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.Color, thickness int) {
	dx := x2 - x1
	dy := y2 - y1

	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	if steps == 0 {
		setPixelBlock(img, x1, y1, thickness, col)
		return
	}

	for i := 0; i <= steps; i++ {
		x := x1 + dx*i/steps
		y := y1 + dy*i/steps
		setPixelBlock(img, x, y, thickness, col)
	}
}

func fillCircle(img *image.RGBA, cx, cy, radius int, col color.Color) {
	bounds := img.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			px := cx + dx
			py := cy + dy
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				img.Set(px, py, col)
			}
		}
	}
}

func drawLabel(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
