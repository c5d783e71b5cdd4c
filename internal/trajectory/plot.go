// internal/trajectory/plot.go
package trajectory

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	_ "gonum.org/v1/plot/vg/vgimg" // png

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
)

// ErrNoPoints is returned when there is no path to draw.
var ErrNoPoints = errors.New("trajectory has no points")

const circleSegments = 64

// NewPlot draws the path and the zone boundaries in logical metres.
func NewPlot(title string, points []component.Point, zones []component.TurbulenceZone) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "distance (m)"
	p.Y.Label.Text = "height (m)"
	p.Legend.Top = true

	for _, z := range zones {
		circle, err := plotter.NewLine(zoneOutline(z))
		if err != nil {
			return nil, fmt.Errorf("failed to build zone %s: %w", z.Name, err)
		}
		circle.Color = color.RGBA{z.Tint.R, z.Tint.G, z.Tint.B, 255}
		circle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(circle)
		p.Legend.Add("zone "+z.Name, circle)
	}

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	path, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("failed to build path: %w", err)
	}
	path.Color = config.AirplaneStroke
	path.Width = vg.Points(1.5)
	p.Add(path)
	p.Legend.Add("flight", path)

	p.Y.Min = math.Min(p.Y.Min, 0)
	return p, nil
}

func zoneOutline(z component.TurbulenceZone) plotter.XYs {
	xys := make(plotter.XYs, circleSegments+1)
	for i := range xys {
		a := 2 * math.Pi * float64(i) / circleSegments
		xys[i] = plotter.XY{X: z.CenterX + z.Radius*math.Cos(a), Y: z.CenterY + z.Radius*math.Sin(a)}
	}
	return xys
}

// WritePNG renders p as PNG into output.
func WritePNG(p *plot.Plot, output io.Writer) error {
	w, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = w.WriteTo(output)
	return err
}

// Save draws the trajectory into a PNG file at path.
func Save(path, title string, points []component.Point, zones []component.TurbulenceZone) (err error) {
	p, err := NewPlot(title, points, zones)
	if err != nil {
		return err
	}
	output, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create plot file: %w", err)
	}
	defer func() {
		if e := output.Close(); e != nil {
			err = combineErrors(err, e)
		}
	}()
	return WritePNG(p, output)
}

func combineErrors(errs ...error) (err error) {
	for _, e := range errs {
		switch {
		case e == nil:
		case err == nil:
			err = e
		default:
			err = multierror.Append(err, e)
		}
	}
	return err
}
