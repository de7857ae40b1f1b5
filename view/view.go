// Package view renders triangle meshes offscreen with Phong shading and
// wireframe edges.
package view

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/vault"
	"github.com/soypat/vault/render"
	"golang.org/x/image/draw"
)

// Camera orbits the origin of the mesh after it is fit in a bi-unit cube.
type Camera struct {
	// Elevation above the XY plane and azimuth from +X, in degrees.
	Elevation float64
	Azimuth   float64
	// Distance from the eye to the origin.
	Distance float64
	// Vertical field of view in degrees.
	Fovy      float64
	Near, Far float64
}

// IsoCamera looks down the (1,1,1) diagonal.
func IsoCamera() Camera {
	return Elevated(math.Atan(1/math.Sqrt2)*180/math.Pi, 45)
}

// Elevated returns a camera at the given elevation and azimuth in degrees.
func Elevated(elevation, azimuth float64) Camera {
	return Camera{
		Elevation: elevation,
		Azimuth:   azimuth,
		Distance:  5,
		Fovy:      30,
		Near:      1,
		Far:       10,
	}
}

func (c Camera) eye() fauxgl.Vector {
	e := c.Elevation * math.Pi / 180
	a := c.Azimuth * math.Pi / 180
	return fauxgl.V(
		c.Distance*math.Cos(e)*math.Cos(a),
		c.Distance*math.Cos(e)*math.Sin(a),
		c.Distance*math.Sin(e),
	)
}

// Style controls surface and edge appearance. Colors are hex strings
// such as "#f6f6f6".
type Style struct {
	SurfaceColor  string
	EdgeColor     string
	Background    string
	ShowEdges     bool
	LineWidth     float64
	SmoothShading bool
	// EdgeStride selects every EdgeStride-th grid line for the wireframe.
	EdgeStride int
	// ShowAxes draws an X/Y/Z orientation triad in the lower left corner.
	ShowAxes bool
}

// DocumentStyle is a white surface with thin dark edges on every grid line.
func DocumentStyle() Style {
	return Style{
		SurfaceColor:  "#f6f6f6",
		EdgeColor:     "#1a1a1a",
		Background:    "#ffffff",
		ShowEdges:     true,
		LineWidth:     1,
		SmoothShading: true,
		EdgeStride:    1,
		ShowAxes:      true,
	}
}

// WireStyle is a light gray surface under sparse black grid lines.
func WireStyle() Style {
	return Style{
		SurfaceColor:  "#f2f2f2",
		EdgeColor:     "#000000",
		Background:    "#ffffff",
		ShowEdges:     true,
		LineWidth:     0.5,
		SmoothShading: true,
		EdgeStride:    6,
	}
}

// Options configures Render.
type Options struct {
	// Output image size in pixels.
	Width, Height int
	// Supersample renders at this multiple of the output size and downsamples
	// for antialiasing. Values below 1 disable it.
	Supersample int
	// ZScale stretches heights before fitting. Zero means 1.
	ZScale float64
	// BoxAspectZ, when positive, rescales heights so the height extent is
	// BoxAspectZ times the larger horizontal extent. Applied after ZScale.
	BoxAspectZ float64
	Camera Camera
	Style  Style
}

// DefaultOptions returns a 1300x900 iso view in document style.
func DefaultOptions() Options {
	return Options{
		Width:       1300,
		Height:      900,
		Supersample: 2,
		ZScale:      1,
		Camera:      IsoCamera(),
		Style:       DocumentStyle(),
	}
}

// RenderSurface triangulates s and renders it along with its wireframe.
func RenderSurface(s vault.Surface, opts Options) (image.Image, error) {
	model, err := render.RenderAll(render.NewSurfaceRenderer(s))
	if err != nil {
		return nil, err
	}
	var edges []render.Segment
	if opts.Style.ShowEdges {
		edges = render.Wireframe(s, opts.Style.EdgeStride, opts.Style.EdgeStride)
	}
	return Render(model, edges, opts)
}

// Render draws the model shaded and, if enabled, the edges over it.
func Render(model []ms3.Triangle, edges []render.Segment, opts Options) (image.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	if len(model) == 0 {
		return nil, errors.New("empty triangle slice")
	}
	surfaceColor, err := parseHex(opts.Style.SurfaceColor)
	if err != nil {
		return nil, fmt.Errorf("surface color: %w", err)
	}
	edgeColor, err := parseHex(opts.Style.EdgeColor)
	if err != nil {
		return nil, fmt.Errorf("edge color: %w", err)
	}
	background, err := parseHex(opts.Style.Background)
	if err != nil {
		return nil, fmt.Errorf("background color: %w", err)
	}

	triangles := make([]*fauxgl.Triangle, len(model))
	for i, t := range model {
		triangles[i] = fauxgl.NewTriangleForPoints(fv(t[0]), fv(t[1]), fv(t[2]))
	}
	var lines []*fauxgl.Line
	if opts.Style.ShowEdges {
		lines = make([]*fauxgl.Line, len(edges))
		for i, e := range edges {
			lines[i] = fauxgl.NewLineForPoints(fv(e[0]), fv(e[1]))
		}
	}
	mesh := fauxgl.NewMesh(triangles, lines)
	if z := opts.ZScale; z > 0 && z != 1 {
		mesh.Transform(fauxgl.Scale(fauxgl.V(1, 1, z)))
	}
	if opts.BoxAspectZ > 0 {
		size := mesh.BoundingBox().Size()
		if size.Z > 0 {
			k := opts.BoxAspectZ * math.Max(size.X, size.Y) / size.Z
			mesh.Transform(fauxgl.Scale(fauxgl.V(1, 1, k)))
		}
	}
	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	if opts.Style.SmoothShading {
		mesh.SmoothNormals()
	}

	scale := opts.Supersample
	if scale < 1 {
		scale = 1
	}
	var (
		cam    = opts.Camera
		eye    = cam.eye()
		center = fauxgl.V(0, 0, 0)
		up     = fauxgl.V(0, 0, 1)
		light  = fauxgl.V(-0.5, 0.75, 1).Normalize()
		aspect = float64(opts.Width) / float64(opts.Height)
	)
	context := fauxgl.NewContext(opts.Width*scale, opts.Height*scale)
	context.ClearColorBufferWith(background)
	// Open surfaces are seen from both sides.
	context.Cull = fauxgl.CullNone
	matrix := fauxgl.LookAt(eye, center, up).Perspective(cam.Fovy, aspect, cam.Near, cam.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = surfaceColor
	context.Shader = shader
	context.DrawTriangles(mesh.Triangles)
	if len(mesh.Lines) > 0 {
		context.Shader = fauxgl.NewSolidColorShader(matrix, edgeColor)
		context.LineWidth = opts.Style.LineWidth * float64(scale)
		// Pull edges towards the eye so they win the depth test against
		// the faces they lie on.
		context.DepthBias = -1e-4
		context.DrawLines(mesh.Lines)
	}
	if opts.Style.ShowAxes {
		drawAxes(context.ColorBuffer, cam, scale)
	}
	img := context.Image()
	if scale > 1 {
		// downsample image for antialiasing
		img = resize.Resize(uint(opts.Width), uint(opts.Height), img, resize.Bilinear)
	}
	return img, nil
}

// axisColors are the X, Y and Z triad colors.
var axisColors = [3]string{"#e03c31", "#2ca02c", "#1f5fd1"}

// drawAxes renders an orientation triad seen from the camera direction and
// composites it over the lower left corner of dst.
func drawAxes(dst draw.Image, cam Camera, scale int) {
	b := dst.Bounds()
	size := b.Dy() / 5
	if b.Dx() < b.Dy() {
		size = b.Dx() / 5
	}
	if size < 8 {
		return
	}
	tc := fauxgl.NewContext(size, size)
	tc.ClearColorBufferWith(fauxgl.Color{})
	tc.LineWidth = 2 * float64(scale)
	dir := cam.eye().Normalize()
	matrix := fauxgl.LookAt(dir.MulScalar(4), fauxgl.V(0, 0, 0), fauxgl.V(0, 0, 1)).Perspective(30, 1, 1, 10)
	ends := [3]fauxgl.Vector{fauxgl.V(0.8, 0, 0), fauxgl.V(0, 0.8, 0), fauxgl.V(0, 0, 0.8)}
	for i, end := range ends {
		tc.Shader = fauxgl.NewSolidColorShader(matrix, fauxgl.HexColor(axisColors[i]))
		tc.DrawLines([]*fauxgl.Line{fauxgl.NewLineForPoints(fauxgl.V(0, 0, 0), end)})
	}
	corner := image.Rect(b.Min.X, b.Max.Y-size, b.Min.X+size, b.Max.Y)
	draw.Draw(dst, corner, tc.ColorBuffer, image.Point{}, draw.Over)
}

// SavePNG writes img to path in PNG format.
func SavePNG(path string, img image.Image) error {
	return fauxgl.SavePNG(path, img)
}

func fv(v ms3.Vec) fauxgl.Vector {
	return fauxgl.V(float64(v.X), float64(v.Y), float64(v.Z))
}

// parseHex validates a "#rrggbb" or "#rrggbbaa" color.
func parseHex(s string) (fauxgl.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return fauxgl.Color{}, fmt.Errorf("bad hex color %q", s)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return fauxgl.Color{}, fmt.Errorf("bad hex color %q: %w", s, err)
	}
	return fauxgl.HexColor(s), nil
}
