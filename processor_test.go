package seamcarve

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/esimov/seamcarve/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_SeamCount(t *testing.T) {
	testCases := []struct {
		name    string
		proc    Processor
		width   int
		want    int
		wantErr bool
	}{
		{name: "absolute width", proc: Processor{NewWidth: 6}, width: 10, want: 4},
		{name: "same width", proc: Processor{NewWidth: 10}, width: 10, want: 0},
		{name: "wider than source", proc: Processor{NewWidth: 12}, width: 10, wantErr: true},
		{name: "zero width", proc: Processor{NewWidth: 0}, width: 10, wantErr: true},
		{name: "percentage", proc: Processor{NewWidth: 20, Percentage: true}, width: 10, want: 2},
		{name: "percentage rounds down", proc: Processor{NewWidth: 25, Percentage: true}, width: 10, want: 2},
		{name: "zero percentage", proc: Processor{NewWidth: 0, Percentage: true}, width: 10, wantErr: true},
		{name: "full percentage", proc: Processor{NewWidth: 100, Percentage: true}, width: 10, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := tc.proc.SeamCount(tc.width)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidResize)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)
		})
	}
}

func TestProcessor_Carve(t *testing.T) {
	p := &Processor{NewWidth: imgWidth / 2}

	c, err := p.Carve(newRandomImage(imgWidth, imgHeight, 11))
	require.NoError(t, err)
	assert.Equal(t, imgWidth/2, c.Width())
	assert.Equal(t, imgHeight, c.Height())
	assert.Len(t, c.Seams(), imgWidth/2)
}

func TestProcessor_CarveErrors(t *testing.T) {
	img := newRandomImage(imgWidth, imgHeight, 12)

	_, err := (&Processor{NewWidth: imgWidth + 1}).Carve(img)
	assert.ErrorIs(t, err, ErrInvalidResize)

	_, err = (&Processor{NewWidth: 5, SeamColor: "not a color"}).Carve(img)
	assert.Error(t, err)

	_, err = (&Processor{NewWidth: 5, BlendMode: "not a mode"}).Carve(img)
	assert.Error(t, err)

	_, err = (&Processor{NewWidth: 5, FaceDetect: true}).Carve(img)
	assert.Error(t, err)

	_, err = (&Processor{NewWidth: 5, FaceDetect: true, Classifier: filepath.Join(t.TempDir(), "missing")}).Carve(img)
	assert.Error(t, err)

	_, err = (&Processor{NewWidth: 5, MaskPath: filepath.Join(t.TempDir(), "missing.png")}).Carve(img)
	assert.Error(t, err)
}

func TestProcessor_MaskProtection(t *testing.T) {
	img := newUniformImage(8, 6, color.NRGBA{R: 90, G: 90, B: 90, A: 255})

	// Protect the interior columns 1 to 3.
	mask := newUniformImage(8, 6, black)
	for y := 0; y < 6; y++ {
		for x := 1; x <= 3; x++ {
			mask.SetNRGBA(x, y, white)
		}
	}
	maskPath := filepath.Join(t.TempDir(), "mask.png")
	f, err := os.Create(maskPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, mask))
	require.NoError(t, f.Close())

	p := &Processor{NewWidth: 7, MaskPath: maskPath}
	c, err := p.Carve(img)
	require.NoError(t, err)

	removed := c.removed[0]
	for row := 1; row < len(removed)-1; row++ {
		assert.Contains(t, []int{4, 5, 6}, removed[row], "row %d", row)
	}
}

func TestProcessor_Picture(t *testing.T) {
	img := newRandomImage(imgWidth, imgHeight, 13)
	p := &Processor{NewWidth: 7}

	c, err := p.Carve(img)
	require.NoError(t, err)

	testCases := []struct {
		output OutputMode
		bounds image.Rectangle
	}{
		{"", image.Rect(0, 0, 7, imgHeight)},
		{OutputResized, image.Rect(0, 0, 7, imgHeight)},
		{OutputEnergy, image.Rect(0, 0, 7, imgHeight)},
		{OutputPath, img.Bounds()},
		{OutputEnergyPath, img.Bounds()},
	}
	for _, tc := range testCases {
		p.Output = tc.output
		pic, err := p.Picture(c)
		require.NoError(t, err)
		assert.Equal(t, tc.bounds, pic.Bounds(), "output %q", tc.output)
	}

	p.Output = OutputPath
	pic, err := p.Picture(c)
	require.NoError(t, err)
	assert.Equal(t, 3*imgHeight, countColor(pic, DefaultSeamColor))

	p.Output = "preview"
	_, err = p.Picture(c)
	assert.Error(t, err)
}

func TestProcessor_Process(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, png.Encode(&src, newRandomImage(imgWidth, imgHeight, 14)))

	var dst bytes.Buffer
	p := &Processor{NewWidth: 4}
	require.NoError(t, p.Process(&src, &dst))

	out, format, err := image.Decode(&dst)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, image.Rect(0, 0, 4, imgHeight), out.Bounds())

	err = p.Process(bytes.NewReader([]byte("garbage")), &dst)
	assert.Error(t, err)
}

func TestProcessor_ExecuteFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	dst := filepath.Join(dir, "out.png")

	f, err := os.Create(src)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, newRandomImage(imgWidth, imgHeight, 15)))
	require.NoError(t, f.Close())

	p := &Processor{NewWidth: 6, Spinner: utils.NewSpinner("", time.Millisecond, false)}
	require.NoError(t, p.Execute(&Ops{Src: src, Dst: dst, PipeName: "-"}))

	out, err := os.Open(dst)
	require.NoError(t, err)
	defer out.Close()

	img, err := png.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, imgHeight), img.Bounds())

	err = p.Execute(&Ops{Src: src, Dst: filepath.Join(dir, "out.webp"), PipeName: "-"})
	assert.Error(t, err)

	err = p.Execute(&Ops{Src: filepath.Join(dir, "missing.png"), Dst: dst, PipeName: "-"})
	assert.Error(t, err)
}

func TestProcessor_ExecuteDirectory(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := filepath.Join(t.TempDir(), "out")

	for i, name := range []string{"a.png", "b.png", "c.png"} {
		f, err := os.Create(filepath.Join(srcDir, name))
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, newRandomImage(imgWidth, imgHeight, int64(20+i))))
		require.NoError(t, f.Close())
	}
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "notes.txt"), []byte("skip me"), 0644))

	p := &Processor{NewWidth: 5}
	require.NoError(t, p.Execute(&Ops{Src: srcDir, Dst: dstDir, PipeName: "-", Workers: 2}))

	for _, name := range []string{"a.png", "b.png", "c.png"} {
		out, err := os.Open(filepath.Join(dstDir, name))
		require.NoError(t, err)
		img, err := png.Decode(out)
		out.Close()
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 5, imgHeight), img.Bounds())
	}
	_, err := os.Stat(filepath.Join(dstDir, "notes.txt"))
	assert.True(t, os.IsNotExist(err))
}
