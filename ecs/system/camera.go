package system

import (
	"math"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// CameraSystem follows the player with the camera entity and keeps the view
// inside the camera limits. All values are world units.
type CameraSystem struct {
	screenW float64
	screenH float64
}

// NewCameraSystem takes the logical screen size in pixels.
func NewCameraSystem(screenW, screenH int) *CameraSystem {
	return &CameraSystem{screenW: float64(screenW), screenH: float64(screenH)}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	target, ok := cameraTarget(w)
	if !ok {
		return
	}

	if cam.Snap || cam.Smoothness <= 0 {
		cam.Center = target
		cam.Snap = false
	} else {
		cam.Center = common.LerpVec(cam.Center, target, cam.Smoothness)
	}

	// align to whole screen pixels so tiles do not shimmer
	ppu := cs.pixelsPerUnit(cam)
	cam.Center = common.V(math.Round(cam.Center.X*ppu)/ppu, math.Round(cam.Center.Y*ppu)/ppu)

	if cam.Limits.Size.X > 0 && cam.Limits.Size.Y > 0 {
		half := cs.ViewSize(cam).Scale(0.5)
		cam.Center.X = clampAxis(cam.Center.X, cam.Limits.Min().X, cam.Limits.Max().X, half.X)
		cam.Center.Y = clampAxis(cam.Center.Y, cam.Limits.Min().Y, cam.Limits.Max().Y, half.Y)
	}
}

// ViewSize is the visible area in world units.
func (cs *CameraSystem) ViewSize(cam *component.Camera) common.Vec2 {
	ppu := cs.pixelsPerUnit(cam)
	return common.V(cs.screenW/ppu, cs.screenH/ppu)
}

func (cs *CameraSystem) pixelsPerUnit(cam *component.Camera) float64 {
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return common.PixelsPerUnit * zoom
}

func cameraTarget(w *ecs.World) (common.Vec2, bool) {
	e, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return common.Vec2{}, false
	}
	k, ok := ecs.Get(w, e, component.KinematicComponent.Kind())
	if !ok || k.Controller == nil {
		return common.Vec2{}, false
	}
	return k.Controller.Position(), true
}

// clampAxis keeps v within [lo+half, hi-half]; a level narrower than the
// view is centered.
func clampAxis(v, lo, hi, half float64) float64 {
	if hi-lo < 2*half {
		return (lo + hi) / 2
	}
	return common.Clamp(v, lo+half, hi-half)
}
