package prefabs

import (
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/juice"
)

func TestEmbeddedPlayerSpec(t *testing.T) {
	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	tun := spec.Controller.Tuning()
	if err := tun.Validate(); err != nil {
		t.Fatalf("embedded tuning invalid: %v", err)
	}
	want := controller.DefaultTuning()
	want.ActivationDelay = 0.5
	if tun != want {
		t.Fatalf("tuning = %+v\nwant %+v", tun, want)
	}
	if spec.Juice.Config() != juice.DefaultConfig() {
		t.Fatalf("juice config = %+v", spec.Juice.Config())
	}
	if got := spec.Render.BodyColor(color.Black); got != (color.NRGBA{R: 0xf4, G: 0xd3, B: 0x5e, A: 0xff}) {
		t.Fatalf("body color = %v", got)
	}

	src, err := LoadScript(spec.Script)
	if err != nil {
		t.Fatalf("LoadScript(%q): %v", spec.Script, err)
	}
	if _, err := juice.CompileScript(spec.Script, src); err != nil {
		t.Fatalf("embedded script: %v", err)
	}
}

func TestControllerSpecOverrides(t *testing.T) {
	spec, err := ParsePlayerSpec([]byte(`
controller:
  size: {x: 0.8, y: 1.6}
  jump_height: 24
  apex_bonus: 0
  free_collider_iterations: 4
juice:
  max_idle_speed: 9
`))
	if err != nil {
		t.Fatalf("ParsePlayerSpec: %v", err)
	}
	tun := spec.Controller.Tuning()
	want := controller.DefaultTuning()
	want.Size = common.V(0.8, 1.6)
	want.JumpHeight = 24
	want.ApexBonus = 0
	want.FreeColliderIterations = 4
	if tun != want {
		t.Fatalf("tuning = %+v\nwant %+v", tun, want)
	}
	if got := spec.Juice.Config().MaxIdleSpeed; got != 3 {
		t.Fatalf("max idle speed = %v, want clamp to 3", got)
	}
	if got := spec.Render.BodyColor(color.White); got != color.White {
		t.Fatalf("missing color should fall back, got %v", got)
	}
}

func TestMarshalTuningRoundTrip(t *testing.T) {
	tun := controller.DefaultTuning()
	tun.JumpHeight = 27.5
	tun.Offset = common.V(0, 0.25)
	data, err := MarshalTuning(tun)
	if err != nil {
		t.Fatalf("MarshalTuning: %v", err)
	}
	if !strings.HasPrefix(string(data), "controller:\n") {
		t.Fatalf("unexpected yaml:\n%s", data)
	}
	spec, err := ParsePlayerSpec(data)
	if err != nil {
		t.Fatalf("ParsePlayerSpec: %v", err)
	}
	if got := spec.Controller.Tuning(); got != tun {
		t.Fatalf("round trip = %+v\nwant %+v", got, tun)
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"rgb", `"#102030"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, false},
		{"rgba", `"#10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"no_hash", `"a0b0c0"`, color.NRGBA{R: 0xa0, G: 0xb0, B: 0xc0, A: 0xff}, false},
		{"short", `"#fff"`, color.NRGBA{}, true},
		{"not_hex", `"#zz0000"`, color.NRGBA{}, true},
		{"list", `[1, 2]`, color.NRGBA{}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec, err := ParsePlayerSpec([]byte("render:\n  color: " + c.in + "\n"))
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePlayerSpec: %v", err)
			}
			if got := spec.Render.Color.Color; got != c.want {
				t.Fatalf("color = %v, want %v", got, c.want)
			}
		})
	}
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		in, prefab, script string
	}{
		{"player.yaml", "player.yaml", "scripts/player.yaml"},
		{"prefabs/player.yaml", "player.yaml", "scripts/player.yaml"},
		{"juice.tengo", "juice.tengo", "scripts/juice.tengo"},
		{"prefabs/scripts/juice.tengo", "scripts/juice.tengo", "scripts/juice.tengo"},
		{"", "", ""},
	}
	for _, c := range cases {
		if got := cleanPrefabPath(c.in); got != c.prefab {
			t.Fatalf("cleanPrefabPath(%q) = %q, want %q", c.in, got, c.prefab)
		}
		if got := cleanScriptPath(c.in); got != c.script {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", c.in, got, c.script)
		}
	}
}

func TestThrottle(t *testing.T) {
	th := throttle{window: 100 * time.Millisecond, last: make(map[string]time.Time)}
	t0 := time.Unix(100, 0)
	steps := []struct {
		name string
		at   time.Duration
		want bool
	}{
		{"a.yaml", 0, true},
		{"a.yaml", 50 * time.Millisecond, false},
		{"b.yaml", 60 * time.Millisecond, true},
		{"a.yaml", 100 * time.Millisecond, true},
		{"a.yaml", 150 * time.Millisecond, false},
	}
	for _, s := range steps {
		if got := th.allow(s.name, t0.Add(s.at)); got != s.want {
			t.Fatalf("allow(%s, +%v) = %v, want %v", s.name, s.at, got, s.want)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]ChangeKind{
		"prefabs/player.yaml":         SpecChange,
		"prefabs/PLAYER.YML":          SpecChange,
		"prefabs/scripts/juice.tengo": ScriptChange,
	}
	for path, want := range cases {
		if got, ok := classify(path); !ok || got != want {
			t.Fatalf("classify(%q) = %v, %v; want %v", path, got, ok, want)
		}
	}
	if _, ok := classify("prefabs/notes.txt"); ok {
		t.Fatalf("txt files should be ignored")
	}
}
