package app

import (
	"flag"
	"testing"
)

func TestBindAndTerrain(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-seed", "9", "-dim", "64", "-set", "ocean=30", "-set", "seed=12", "-layers", "climate, ,ocean"}
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	tc := cfg.Terrain()
	if tc.Seed != 12 || tc.Dimension != 64 || tc.OceanThreshold != 30 {
		t.Fatalf("unexpected config %+v", tc)
	}
	if names := cfg.LayerNames(); len(names) != 2 || names[0] != "climate" || names[1] != "ocean" {
		t.Fatalf("unexpected layers %v", names)
	}
}

func TestKVListRejectsBareKeys(t *testing.T) {
	var l KVList
	if err := l.Set("ocean"); err == nil {
		t.Fatal("expected error for override without value")
	}
	if err := l.Set("a=b=c"); err != nil {
		t.Fatal(err)
	}
	if got := l.Map()["a"]; got != "b=c" {
		t.Fatalf("value %q, want b=c", got)
	}
}

func TestDefaultsListEveryLayer(t *testing.T) {
	if len(NewConfig().LayerNames()) < 9 {
		t.Fatal("default layer list is incomplete")
	}
}
