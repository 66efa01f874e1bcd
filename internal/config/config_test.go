package config

import (
	"errors"
	"flag"
	"io"
	"testing"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestParseThresholdDefaults(t *testing.T) {
	cfg, err := ParseThreshold(nil, env(nil), io.Discard)
	if err != nil {
		t.Fatalf("ParseThreshold: %v", err)
	}

	want := Threshold{
		ImagePath: DefaultImagePath,
		Target:    DefaultTargetPixels,
		Decoder:   "opencv",
		Display:   "opencv",
	}
	if *cfg != want {
		t.Errorf("cfg = %+v, want %+v", *cfg, want)
	}
}

func TestParseThresholdFlagsOverrideEnv(t *testing.T) {
	vars := map[string]string{"BRIGHTCUT_IMAGE": "env.png", "BRIGHTCUT_TARGET": "50"}

	cfg, err := ParseThreshold([]string{"-target", "7", "-decoder", "stdlib", "-display", "none", "-out", "bin.png", "-strict"}, env(vars), io.Discard)
	if err != nil {
		t.Fatalf("ParseThreshold: %v", err)
	}

	if cfg.ImagePath != "env.png" {
		t.Errorf("ImagePath = %q, want env.png", cfg.ImagePath)
	}
	if cfg.Target != 7 {
		t.Errorf("Target = %d, want 7", cfg.Target)
	}
	if cfg.Decoder != "stdlib" || cfg.Display != "none" || cfg.OutputPath != "bin.png" || !cfg.Strict {
		t.Errorf("unexpected cfg %+v", *cfg)
	}
}

func TestParseThresholdErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"negative target", []string{"-target", "-1"}, nil},
		{"unknown decoder", []string{"-decoder", "magick"}, nil},
		{"unknown display", []string{"-display", "tty"}, nil},
		{"empty image", []string{"-image", ""}, nil},
		{"unknown flag", []string{"-verbose"}, nil},
		{"positional args", []string{"extra.png"}, nil},
		{"bad env target", nil, map[string]string{"BRIGHTCUT_TARGET": "many"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseThreshold(tt.args, env(tt.env), io.Discard)
			if !errors.Is(err, ErrUsage) {
				t.Fatalf("err = %v, want ErrUsage", err)
			}
		})
	}
}

func TestParseHeader(t *testing.T) {
	cfg, err := ParseHeader(nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	want := Header{
		Pattern:    DefaultModelPattern,
		OutputPath: DefaultHeaderPath,
		VarName:    DefaultVarName,
		Columns:    12,
	}
	if *cfg != want {
		t.Errorf("cfg = %+v, want %+v", *cfg, want)
	}

	cfg, err = ParseHeader([]string{"-in", "net.tflite", "-out", "net.h", "-var", "net", "-columns", "16"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if cfg.InputPath != "net.tflite" || cfg.OutputPath != "net.h" || cfg.VarName != "net" || cfg.Columns != 16 {
		t.Errorf("unexpected cfg %+v", *cfg)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	tests := [][]string{
		{"-columns", "0"},
		{"-var", ""},
		{"-out", ""},
		{"-pattern", ""},
		{"stray"},
	}

	for _, args := range tests {
		if _, err := ParseHeader(args, io.Discard); !errors.Is(err, ErrUsage) {
			t.Errorf("ParseHeader(%v) err = %v, want ErrUsage", args, err)
		}
	}
}

func TestParseHelp(t *testing.T) {
	_, err := ParseThreshold([]string{"-h"}, env(nil), io.Discard)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("ParseThreshold(-h) err = %v, want flag.ErrHelp", err)
	}

	_, err = ParseHeader([]string{"-help"}, io.Discard)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("ParseHeader(-help) err = %v, want flag.ErrHelp", err)
	}
}
