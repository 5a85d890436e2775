// Drawing the scatter. Plain image operations for the frame and the
// points, freetype for the axis labels.

package rama

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/golang/freetype"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	margin   = 45
	plotSide = 360 // one pixel per degree
	fontSize = 11
)

// Plot renders the phi/psi pairs as a PNG scatter over the usual
// -180..180 square.
func Plot(w io.Writer, pairs [][2]float64) error {
	side := plotSide + 2*margin
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	frame(img)
	for _, p := range pairs {
		dot(img, p[0], p[1])
	}
	if err := labels(img); err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePlot writes the scatter to a file.
func SavePlot(fname string, pairs [][2]float64) error {
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := Plot(fp, pairs); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// frame draws the plot border and the zero lines.
func frame(img *image.RGBA) {
	grey := color.RGBA{190, 190, 190, 255}
	for i := 0; i <= plotSide; i++ {
		img.Set(margin+i, margin, color.Black)
		img.Set(margin+i, margin+plotSide, color.Black)
		img.Set(margin, margin+i, color.Black)
		img.Set(margin+plotSide, margin+i, color.Black)
		img.Set(margin+i, margin+plotSide/2, grey)
		img.Set(margin+plotSide/2, margin+i, grey)
	}
}

// dot puts a small filled square at one angle pair.
func dot(img *image.RGBA, phi, psi float64) {
	x := margin + int(phi+180)
	y := margin + plotSide - int(psi+180)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			img.Set(x+dx, y+dy, color.Black)
		}
	}
}

// labels writes the tick values and axis names.
func labels(img *image.RGBA) error {
	fnt, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parsing builtin font: %w", err)
	}
	c := freetype.NewContext()
	c.SetFont(fnt)
	c.SetFontSize(fontSize)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.Black)

	at := func(s string, x, y int) error {
		_, err := c.DrawString(s, freetype.Pt(x, y))
		return err
	}
	ticks := []struct {
		s    string
		off  int // pixels from the plot origin
		wdth int // rough string width for centring
	}{
		{"-180", 0, 24}, {"0", plotSide / 2, 6}, {"180", plotSide, 18},
	}
	for _, t := range ticks {
		// x axis below the frame, y axis left of it
		if err := at(t.s, margin+t.off-t.wdth/2, margin+plotSide+16); err != nil {
			return err
		}
		if err := at(t.s, margin-t.wdth-6, margin+plotSide-t.off+4); err != nil {
			return err
		}
	}
	if err := at("phi", margin+plotSide/2-8, margin+plotSide+32); err != nil {
		return err
	}
	return at("psi", 4, margin+plotSide/2-8)
}
