package imop

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/esimov/seamcarve/utils"
)

// Supported composition operations.
const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Bitmap holds the result of a composition.
type Bitmap struct {
	Img *image.NRGBA
}

// Composite holds the currently active composition operation.
type Composite struct {
	current string
	ops     []string
}

// NewBitmap returns a transparent bitmap of the given size.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// InitOp initializes a new composition with SrcOver as the active operation.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Clear,
			Copy,
			Dst,
			SrcOver,
			DstOver,
			SrcIn,
			DstIn,
			SrcOut,
			DstOut,
			SrcAtop,
			DstAtop,
			Xor,
		},
	}
}

// Set changes the active composition operation.
func (op *Composite) Set(cop string) error {
	if !utils.Contains(op.ops, cop) {
		return fmt.Errorf("unsupported composite operation: %q", cop)
	}
	op.current = cop
	return nil
}

// Get returns the active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// Draw composes the src image over the dst backdrop using the active operation
// and writes the result into the bitmap. When blend is not nil the source colors
// are mixed with the backdrop colors before the composition takes place.
// The images are expected to share the same bounds.
func (op *Composite) Draw(bitmap *Bitmap, src, dst *image.NRGBA, blend *Blend) {
	bounds := src.Bounds()
	if bitmap == nil {
		bitmap = NewBitmap(bounds)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s := src.NRGBAAt(x, y)
			b := dst.NRGBAAt(x, y)

			rs, gs, bs, as := norm(s.R), norm(s.G), norm(s.B), norm(s.A)
			rb, gb, bb, ab := norm(b.R), norm(b.G), norm(b.B), norm(b.A)

			if blend != nil {
				rs = (1-ab)*rs + ab*blend.apply(rs, rb)
				gs = (1-ab)*gs + ab*blend.apply(gs, gb)
				bs = (1-ab)*bs + ab*blend.apply(bs, bb)
			}

			// Porter-Duff coefficients of the source and the backdrop.
			var fa, fb float64
			switch op.current {
			case Clear:
				fa, fb = 0, 0
			case Copy:
				fa, fb = 1, 0
			case Dst:
				fa, fb = 0, 1
			case SrcOver:
				fa, fb = 1, 1-as
			case DstOver:
				fa, fb = 1-ab, 1
			case SrcIn:
				fa, fb = ab, 0
			case DstIn:
				fa, fb = 0, as
			case SrcOut:
				fa, fb = 1-ab, 0
			case DstOut:
				fa, fb = 0, 1-as
			case SrcAtop:
				fa, fb = ab, 1-as
			case DstAtop:
				fa, fb = 1-ab, as
			case Xor:
				fa, fb = 1-ab, 1-as
			}

			an := as*fa + ab*fb
			if an == 0 {
				bitmap.Img.SetNRGBA(x, y, color.NRGBA{})
				continue
			}
			bitmap.Img.SetNRGBA(x, y, color.NRGBA{
				R: denorm((as*fa*rs + ab*fb*rb) / an),
				G: denorm((as*fa*gs + ab*fb*gb) / an),
				B: denorm((as*fa*bs + ab*fb*bb) / an),
				A: denorm(an),
			})
		}
	}
}

func norm(c uint8) float64 {
	return float64(c) / 255
}

func denorm(c float64) uint8 {
	return uint8(math.Round(utils.Min(utils.Max(c, 0), 1) * 255))
}
