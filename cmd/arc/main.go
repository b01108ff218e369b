// Command arc simulates a standing jump on flat ground with a player tuning
// and prints the shape of the arc. It runs without a window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/prefabs"
)

var (
	ErrNoGround  = errors.New("arc: controller never became grounded")
	ErrNoJump    = errors.New("arc: jump did not start")
	ErrNoLanding = errors.New("arc: no landing within the frame limit")
)

// settleFrames is how long the controller may take to touch the floor
// before the jump.
const settleFrames = 10

type Arc struct {
	ApexHeight   float64
	ApexFrame    int
	LandingFrame int
	AirTime      float64
}

func main() {
	specPath := flag.String("spec", "", "player spec YAML (default: prefabs/player.yaml)")
	tps := flag.Int("tps", 60, "simulation ticks per second")
	maxFrames := flag.Int("max", 600, "give up after this many airborne frames")
	flag.Parse()

	spec, err := loadSpec(*specPath)
	if err != nil {
		log.Fatal(err)
	}
	if *tps <= 0 {
		log.Fatalf("arc: tps %d must be positive", *tps)
	}

	arc, err := Simulate(spec.Controller.Tuning(), 1/float64(*tps), *maxFrames)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("apex height:   %.3f units (frame %d)\n", arc.ApexHeight, arc.ApexFrame)
	fmt.Printf("air time:      %.3f s\n", arc.AirTime)
	fmt.Printf("landing frame: %d\n", arc.LandingFrame)
}

func loadSpec(path string) (*prefabs.PlayerSpec, error) {
	if path == "" {
		return prefabs.LoadPlayerSpec()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return prefabs.ParsePlayerSpec(data)
}

// Simulate stands a controller on a floor at y=0, presses jump once, holds
// it and steps until the controller lands. Frames are counted from the
// jump frame. The activation delay is ignored.
func Simulate(t controller.Tuning, dt float64, maxFrames int) (Arc, error) {
	t.ActivationDelay = 0
	floor := common.Box{Center: common.V(0, -1), Size: common.V(1000, 2)}
	ground := collision.NewBoxes([]common.Box{floor}, collision.DefaultCellSize)

	start := common.V(0, t.Size.Y/2+0.05).Sub(t.Offset)
	c, err := controller.New(ground, start, t)
	if err != nil {
		return Arc{}, err
	}

	clk := controller.Clock{}
	for i := 0; i < settleFrames && !c.Grounded(); i++ {
		clk = clk.Advance(dt)
		c.Update(controller.FrameInput{}, clk)
	}
	if !c.Grounded() {
		return Arc{}, ErrNoGround
	}
	feet := c.Bounds().Min().Y

	clk = clk.Advance(dt)
	c.Update(controller.FrameInput{JumpPressed: true}, clk)
	if !c.JumpingThisFrame() {
		return Arc{}, ErrNoJump
	}

	var arc Arc
	for f := 1; f <= maxFrames; f++ {
		clk = clk.Advance(dt)
		c.Update(controller.FrameInput{}, clk)
		if h := c.Bounds().Min().Y - feet; h > arc.ApexHeight {
			arc.ApexHeight = h
			arc.ApexFrame = f
		}
		if c.LandingThisFrame() {
			arc.LandingFrame = f
			arc.AirTime = float64(f) * dt
			return arc, nil
		}
	}
	return arc, fmt.Errorf("%w: %d frames", ErrNoLanding, maxFrames)
}
