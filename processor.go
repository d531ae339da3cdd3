package seamcarve

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/esimov/seamcarve/utils"
	"github.com/pkg/errors"
)

// OutputMode selects which picture of the carving session gets encoded.
type OutputMode string

const (
	// OutputResized outputs the carved image.
	OutputResized OutputMode = "resized"
	// OutputEnergy outputs the energy map of the carved image.
	OutputEnergy OutputMode = "energy"
	// OutputPath outputs the original image with the removed seams highlighted.
	OutputPath OutputMode = "path"
	// OutputEnergyPath outputs the energy map of the original image with the removed seams highlighted.
	OutputEnergyPath OutputMode = "energy-path"
)

var outputModes = []OutputMode{OutputResized, OutputEnergy, OutputPath, OutputEnergyPath}

// Processor options
type Processor struct {
	NewWidth   int
	Percentage bool
	Output     OutputMode
	SeamColor  string
	BlendMode  string
	MaskPath   string
	FaceDetect bool
	Classifier string
	FaceAngle  float64
	Spinner    *utils.Spinner
}

// SeamCount returns the number of seams to remove from an image of the given width.
// With the Percentage option NewWidth is the percentage of the width to remove.
func (p *Processor) SeamCount(width int) (int, error) {
	var n int
	if p.Percentage {
		if p.NewWidth <= 0 || p.NewWidth >= 100 {
			return 0, errors.Wrapf(ErrInvalidResize, "percentage should be between 0 and 100, got %d", p.NewWidth)
		}
		n = int(float64(width) * float64(p.NewWidth) / 100)
	} else {
		if p.NewWidth <= 0 {
			return 0, errors.Wrap(ErrInvalidResize, "new width should be greater than zero")
		}
		if p.NewWidth > width {
			return 0, errors.Wrap(ErrInvalidResize, "new width should be less than image width")
		}
		n = width - p.NewWidth
	}
	return n, nil
}

// Carve creates a new carving session for the image, protects the masked and
// the detected face regions, then removes the requested number of seams.
func (p *Processor) Carve(img *image.NRGBA) (*Carver, error) {
	g, err := NewGridFromImage(img)
	if err != nil {
		return nil, err
	}

	if p.MaskPath != "" {
		mask, err := decodeImg(p.MaskPath)
		if err != nil {
			return nil, err
		}
		// The mask is stretched over the image in case their sizes differ.
		m := imaging.Resize(mask, g.Width(), g.Height(), imaging.Lanczos)
		if err := g.Protect(m); err != nil {
			return nil, err
		}
	}

	if p.FaceDetect {
		if p.Classifier == "" {
			return nil, errors.New("a cascade classifier is required for face detection")
		}
		classifier, err := loadClassifier(p.Classifier)
		if err != nil {
			return nil, err
		}
		for _, face := range detectFaces(classifier, imgToNRGBA(img), p.FaceAngle) {
			g.ProtectRect(face)
		}
	}

	c := NewCarverFromGrid(g)
	if p.SeamColor != "" {
		col, err := ParseColor(p.SeamColor)
		if err != nil {
			return nil, err
		}
		c.SetSeamColor(col)
	}
	if err := c.SetBlendMode(p.BlendMode); err != nil {
		return nil, err
	}

	n, err := p.SeamCount(g.Width())
	if err != nil {
		return nil, err
	}
	if err := c.ResizeWidth(n); err != nil {
		return nil, err
	}
	return c, nil
}

// Picture returns the session picture selected by the Output option.
func (p *Processor) Picture(c *Carver) (*image.NRGBA, error) {
	switch p.Output {
	case "", OutputResized:
		return c.ResizedPicture(), nil
	case OutputEnergy:
		return c.ResizedEnergyPicture(), nil
	case OutputPath:
		return c.PathPicture(), nil
	case OutputEnergyPath:
		return c.EnergyPathPicture(), nil
	}
	return nil, errors.Errorf("unsupported output mode %q, expected one of %v", p.Output, outputModes)
}

// Process decodes the source image, carves it and encodes the selected picture into w.
// We are using the io package, since we can provide different input and output types,
// as long as they implement the io.Reader and io.Writer interface.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return errors.Wrap(err, "could not decode the source image")
	}

	c, err := p.Carve(imgToNRGBA(src))
	if err != nil {
		return err
	}
	img, err := p.Picture(c)
	if err != nil {
		return err
	}
	return encodeImg(w, img)
}
