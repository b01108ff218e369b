package system

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

var (
	solidColor   = color.RGBA{R: 0x3d, G: 0x40, B: 0x5b, A: 0xff}
	outlineColor = color.RGBA{R: 0x81, G: 0x86, B: 0xa8, A: 0xff}
	rayColor     = color.RGBA{R: 0xff, G: 0x4d, B: 0x4d, A: 0xc0}
	hitColor     = colornames.Limegreen
)

// View maps world units (y up) to screen pixels (y down) around a camera.
type View struct {
	Center  common.Vec2
	Scale   float64
	ScreenW float64
	ScreenH float64
}

func (v View) Project(x, y float64) (float64, float64) {
	return (x-v.Center.X)*v.Scale + v.ScreenW/2, v.ScreenH/2 - (y-v.Center.Y)*v.Scale
}

// ProjectBox returns the top-left corner and pixel size of b.
func (v View) ProjectBox(b common.Box) (x, y, w, h float64) {
	lo, hi := b.Min(), b.Max()
	x, y = v.Project(lo.X, hi.Y)
	return x, y, b.Size.X * v.Scale, b.Size.Y * v.Scale
}

// RenderSystem draws the level, the bodies and the particles. Debug adds the
// probe rays, the adjacency flags, the cp shapes and the scheduler timings.
type RenderSystem struct {
	solids []common.Box
	space  *collision.Space
	sched  *ecs.Scheduler
	pixel  *ebiten.Image
	frame  int

	Debug bool
}

func NewRenderSystem(solids []common.Box) *RenderSystem {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &RenderSystem{solids: solids, pixel: pixel}
}

// SetDebugSpace draws space's shapes in debug mode. Only the cp backend has
// one.
func (r *RenderSystem) SetDebugSpace(space *collision.Space) { r.space = space }

func (r *RenderSystem) SetScheduler(s *ecs.Scheduler) { r.sched = s }

func (r *RenderSystem) View(w *ecs.World, screen *ebiten.Image) View {
	b := screen.Bounds()
	v := View{Scale: common.PixelsPerUnit, ScreenW: float64(b.Dx()), ScreenH: float64(b.Dy())}
	if _, cam, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		v.Center = cam.Center
		if cam.Zoom > 0 {
			v.Scale *= cam.Zoom
		}
	}
	return v
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	r.frame++
	view := r.View(w, screen)

	for _, b := range r.solids {
		x, y, bw, bh := view.ProjectBox(b)
		vector.FillRect(screen, float32(x), float32(y), float32(bw), float32(bh), solidColor, false)
		vector.StrokeRect(screen, float32(x), float32(y), float32(bw), float32(bh), 1, outlineColor, false)
	}

	ecs.ForEach(w, component.ParticleComponent.Kind(), func(_ ecs.Entity, p *component.Particle) {
		s := p.Size * view.Scale
		x, y := view.Project(p.Pos.X, p.Pos.Y)
		vector.FillRect(screen, float32(x-s/2), float32(y-s/2), float32(s), float32(s), p.Color, false)
	})

	ecs.ForEach2(w, component.KinematicComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, k *component.Kinematic, body *component.Body) {
		if k.Controller == nil {
			return
		}
		tilt, facing, idle := 0.0, 1.0, 1.0
		if j, ok := ecs.Get(w, e, component.JuiceComponent.Kind()); ok && j.State != nil {
			tilt, facing, idle = j.State.Tilt, j.State.Facing, j.State.IdleSpeed
		}
		r.drawBody(screen, view, k.Controller.Bounds(), body.Color, tilt, facing, idle)
	})

	if r.Debug {
		r.drawDebug(w, screen, view)
	}
}

func (r *RenderSystem) drawBody(screen *ebiten.Image, view View, b common.Box, c color.Color, tilt, facing, idle float64) {
	breath := 1 + 0.04*math.Sin(float64(r.frame)/60*2*math.Pi*idle)
	wpx, hpx := b.Size.X*view.Scale, b.Size.Y*view.Scale*breath
	fx, fy := view.Project(b.Center.X, b.Min().Y)

	op := &ebiten.DrawImageOptions{}
	// pivot on the feet so the lean and the breathing keep them planted
	op.GeoM.Scale(wpx, hpx)
	op.GeoM.Translate(-wpx/2, -hpx)
	op.GeoM.Rotate(tilt)
	op.GeoM.Translate(fx, fy)
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(r.pixel, op)

	eye := &ebiten.DrawImageOptions{}
	es := wpx * 0.2
	eye.GeoM.Scale(es, es)
	eye.GeoM.Translate(-es/2+facing*wpx*0.22, -hpx*0.75)
	eye.GeoM.Rotate(tilt)
	eye.GeoM.Translate(fx, fy)
	eye.ColorScale.ScaleWithColor(colornames.Black)
	screen.DrawImage(r.pixel, eye)
}

func (r *RenderSystem) drawDebug(w *ecs.World, screen *ebiten.Image, view View) {
	r.space.DebugDraw(screen, view.Project)

	var lines []string
	ecs.ForEach(w, component.KinematicComponent.Kind(), func(e ecs.Entity, k *component.Kinematic) {
		c := k.Controller
		if c == nil {
			return
		}
		rays := c.Rays()
		adj := c.Adjacency()
		hits := [4]bool{adj.Up, adj.Right, adj.Down, adj.Left}
		t := c.Tuning()
		for i, rr := range rays.All() {
			clr := color.Color(rayColor)
			if hits[i] {
				clr = hitColor
			}
			for _, p := range rr.SamplePoints(t.DetectorCount) {
				end := p.Add(rr.Dir.Scale(t.DetectionRayLength))
				ax, ay := view.Project(p.X, p.Y)
				bx, by := view.Project(end.X, end.Y)
				vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 1, clr, false)
			}
		}
		x, y, bw, bh := view.ProjectBox(c.Bounds())
		vector.StrokeRect(screen, float32(x), float32(y), float32(bw), float32(bh), 1, colornames.Yellow, false)

		vel := c.Velocity()
		lines = append(lines, fmt.Sprintf("%s %s vel=(%.2f, %.2f) up=%v down=%v left=%v right=%v",
			e, c.State(), vel.X, vel.Y, adj.Up, adj.Down, adj.Left, adj.Right))
	})

	if r.sched != nil {
		systems := r.sched.Systems()
		for i, d := range r.sched.Timings() {
			lines = append(lines, fmt.Sprintf("%T %v", systems[i], d))
		}
	}
	lines = append(lines, fmt.Sprintf("TPS %.1f FPS %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()))
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 10, 10)
}
