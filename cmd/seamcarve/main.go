package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/esimov/seamcarve"
	"github.com/esimov/seamcarve/utils"
)

const helpBanner = `
┌─┐┌─┐┌─┐┌┬┐┌─┐┌─┐┬─┐┬  ┬┌─┐
└─┐├┤ ├─┤││││  ├─┤├┬┘└┐┌┘├┤
└─┘└─┘┴ ┴┴ ┴└─┘┴ ┴┴└─ └┘ └─┘

Content aware image width reduction by seam carving.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source")
	destination = flag.String("out", pipeName, "Destination")
	newWidth    = flag.Int("width", 0, "New width")
	percentage  = flag.Bool("perc", false, "Reduce the width by the percentage given in -width")
	output      = flag.String("output", string(seamcarve.OutputResized), "Output picture: resized, energy, path or energy-path")
	seamColor   = flag.String("color", "#ff0000", "Seam color used by the path outputs")
	blendMode   = flag.String("blend", "", "Blend mode of the seam color: darken, lighten, multiply, screen or overlay")
	maskPath    = flag.String("mask", "", "Mask file path for protecting image regions")
	faceDetect  = flag.Bool("face", false, "Use face detection")
	faceAngle   = flag.Float64("angle", 0.0, "Face rotation angle")
	cascade     = flag.String("cc", "", "Cascade classifier")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *newWidth <= 0 {
		flag.Usage()
		log.Fatal(utils.DecorateText("\nPlease provide a width or a percentage for the image rescaling!", utils.ErrorMessage))
	}
	if *faceDetect && len(*cascade) == 0 {
		log.Fatal(utils.DecorateText("Please specify a face classifier in case you are using the -face flag!", utils.ErrorMessage))
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
		utils.DecorateText("is carving the image...", utils.DefaultMessage))

	proc := &seamcarve.Processor{
		NewWidth:   *newWidth,
		Percentage: *percentage,
		Output:     seamcarve.OutputMode(*output),
		SeamColor:  *seamColor,
		BlendMode:  *blendMode,
		MaskPath:   *maskPath,
		FaceDetect: *faceDetect,
		Classifier: *cascade,
		FaceAngle:  *faceAngle,
		Spinner:    utils.NewSpinner(spinnerText, time.Millisecond*200, true),
	}

	op := &seamcarve.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *workers,
	}

	if err := proc.Execute(op); err != nil {
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}
}
