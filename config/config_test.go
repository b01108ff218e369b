package config

import (
	"errors"
	"strings"
	"testing"
)

func TestParseEnvDefaults(t *testing.T) {
	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	want := Config{Level: "playground", Ground: GroundSpace, TPS: 60, Watch: true}
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("PLATFORMER_TPS", "fast")

	_, err := ParseEnv()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "config: parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		want    Config
		wantErr error
	}{
		{
			name: "env_only",
			env:  map[string]string{"PLATFORMER_LEVEL": "cave", "PLATFORMER_DEBUG": "true", "PLATFORMER_GROUND": "boxes"},
			want: Config{Level: "cave", Debug: true, Ground: GroundBoxes, TPS: 60, Watch: true},
		},
		{
			name: "flags_override_env",
			env:  map[string]string{"PLATFORMER_TPS": "120", "PLATFORMER_WATCH": "true"},
			args: []string{"-tps", "30", "-watch=false", "-level", "playground.json"},
			want: Config{Level: "playground.json", Ground: GroundSpace, TPS: 30},
		},
		{
			name:    "unknown_ground",
			args:    []string{"-ground", "bullet"},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "zero_tps",
			env:     map[string]string{"PLATFORMER_TPS": "0"},
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(tc.args)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if cfg != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, cfg)
			}
		})
	}
}

func TestDt(t *testing.T) {
	if got := (Config{TPS: 50}).Dt(); got != 0.02 {
		t.Fatalf("expected 0.02, got %v", got)
	}
}
