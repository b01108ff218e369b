package system

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/juice"
	"github.com/milk9111/platformer/prefabs"
)

// HotReloadSystem applies prefab and script edits to the running player.
// A bad edit is logged and the previous values stay in effect.
type HotReloadSystem struct {
	events <-chan prefabs.Change
	errs   <-chan error
	script string
}

// NewHotReloadSystem drains events and errs, typically from a
// prefabs.Watcher. script is the juice script currently loaded.
func NewHotReloadSystem(events <-chan prefabs.Change, errs <-chan error, script string) *HotReloadSystem {
	return &HotReloadSystem{events: events, errs: errs, script: script}
}

func (h *HotReloadSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for {
		select {
		case err, ok := <-h.errs:
			if !ok {
				h.errs = nil
				continue
			}
			log.Printf("prefabs: watch: %v", err)
		case change, ok := <-h.events:
			if !ok {
				h.events = nil
				continue
			}
			if err := h.Reload(w, change); err != nil {
				log.Printf("prefabs: reload %s: %v", change.Path, err)
			}
		default:
			return
		}
	}
}

// Reload applies one change. Changes to files the player does not use are
// ignored.
func (h *HotReloadSystem) Reload(w *ecs.World, change prefabs.Change) error {
	switch change.Kind {
	case prefabs.SpecChange:
		if filepath.Base(change.Path) != prefabs.PlayerFile {
			return nil
		}
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return err
		}
		if err := h.applySpec(w, spec); err != nil {
			return err
		}
		log.Printf("prefabs: reloaded %s", change.Path)
		return nil
	case prefabs.ScriptChange:
		if h.script == "" || filepath.Base(change.Path) != filepath.Base(h.script) {
			return nil
		}
		return ApplyScript(w, h.script)
	default:
		return fmt.Errorf("prefabs: unknown change kind %d", change.Kind)
	}
}

// applySpec compiles a changed script before touching the world so a broken
// script leaves the old spec and reactor in place.
func (h *HotReloadSystem) applySpec(w *ecs.World, spec *prefabs.PlayerSpec) error {
	var reactor juice.Reactor
	if spec.Script != h.script {
		r, err := compileReactor(spec.Script)
		if err != nil {
			return err
		}
		reactor = r
	}
	if err := ApplyPlayerSpec(w, spec); err != nil {
		return err
	}
	if reactor != nil {
		installReactor(w, reactor, spec.Script)
		h.script = spec.Script
	}
	return nil
}

// ApplyPlayerSpec pushes spec's tuning, juice settings and colors onto every
// player entity. The tuning is validated before anything changes.
func ApplyPlayerSpec(w *ecs.World, spec *prefabs.PlayerSpec) error {
	tuning := spec.Controller.Tuning()
	if err := tuning.Validate(); err != nil {
		return err
	}
	for _, e := range w.Query(component.PlayerTagComponent.Kind(), component.KinematicComponent.Kind()) {
		k, _ := ecs.Get(w, e, component.KinematicComponent.Kind())
		if k.Controller != nil {
			if err := k.Controller.SetTuning(tuning); err != nil {
				return err
			}
		}
		if j, ok := ecs.Get(w, e, component.JuiceComponent.Kind()); ok {
			if j.State != nil {
				j.State.SetConfig(spec.Juice.Config())
			}
			j.DustColor = spec.Render.DustColor(j.DustColor)
		}
		if body, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
			body.Color = spec.Render.BodyColor(body.Color)
		}
	}
	return nil
}

// ApplyScript compiles the named juice script and installs it on every
// player. An empty name restores the built-in reactions.
func ApplyScript(w *ecs.World, name string) error {
	reactor, err := compileReactor(name)
	if err != nil {
		return err
	}
	installReactor(w, reactor, name)
	return nil
}

func compileReactor(name string) (juice.Reactor, error) {
	if name == "" {
		return juice.DefaultReactor{}, nil
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	compiled, err := juice.CompileScript(name, src)
	if err != nil {
		return nil, err
	}
	return compiled, nil
}

func installReactor(w *ecs.World, reactor juice.Reactor, name string) {
	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.JuiceComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, j *component.Juice) {
		j.Reactor = reactor
	})
	log.Printf("juice: loaded script %q", name)
}
