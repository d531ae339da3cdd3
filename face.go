package seamcarve

import (
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
	"github.com/pkg/errors"
)

// Detections below this quality score are discarded.
const faceQualityThreshold = 5.0

// loadClassifier unpacks the pigo cascade file located at path.
func loadClassifier(path string) (*pigo.Pigo, error) {
	cascade, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read the cascade file")
	}
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, errors.Wrap(err, "could not unpack the cascade file")
	}
	return classifier, nil
}

// detectFaces returns the bounding boxes of the faces found in the image.
func detectFaces(classifier *pigo.Pigo, img *image.NRGBA, angle float64) []image.Rectangle {
	cols, rows := img.Bounds().Dx(), img.Bounds().Dy()
	maxSize := rows
	if cols < rows {
		maxSize = cols
	}

	params := pigo.CascadeParams{
		MinSize:     20,
		MaxSize:     maxSize,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(img),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	// Run the classifier over the image and merge the overlapping detections.
	dets := classifier.RunCascade(params, angle)
	dets = classifier.ClusterDetections(dets, 0.2)

	faces := make([]image.Rectangle, 0, len(dets))
	for _, det := range dets {
		if det.Q < faceQualityThreshold {
			continue
		}
		half := det.Scale / 2
		faces = append(faces, image.Rect(
			det.Col-half, det.Row-half,
			det.Col+half, det.Row+half,
		))
	}
	return faces
}
