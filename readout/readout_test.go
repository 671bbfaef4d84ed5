package readout_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/visistat/readout"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestParseCPUAndPower(t *testing.T) {
	r, err := readout.ParseString("CPU: 45.2°C\nPOWER: 12.5W\n", readout.Celsius)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if r.CPUCelsius == nil || !approx(*r.CPUCelsius, 45.2) {
		t.Fatalf("expected cpu 45.2, got %v", r.CPUCelsius)
	}
	if r.PowerWatts == nil || !approx(*r.PowerWatts, 12.5) {
		t.Fatalf("expected power 12.5, got %v", r.PowerWatts)
	}
}

func TestParseUnits(t *testing.T) {
	cases := []struct {
		name  string
		input string
		unit  readout.TempUnit
		want  float64
	}{
		{"explicit fahrenheit", "cpu=212F", readout.Celsius, 100},
		{"file unit applies without suffix", "CPU 212", readout.Fahrenheit, 100},
		{"explicit unit wins over file unit", "CPU: 50 °C", readout.Fahrenheit, 50},
		{"symbol unit", "CPU 122℉", readout.Celsius, 50},
		{"words between label and value", "cpu package temp -> 61.5", readout.Celsius, 61.5},
		{"negative value", "CPU: -5C", readout.Celsius, -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := readout.ParseString(tc.input, tc.unit)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if r.CPUCelsius == nil || !approx(*r.CPUCelsius, tc.want) {
				t.Fatalf("expected %g, got %v", tc.want, r.CPUCelsius)
			}
		})
	}
}

func TestFirstReadingWins(t *testing.T) {
	r, err := readout.ParseString("CPU: 40C GPU: 70C CPU: 90C", readout.Celsius)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !approx(*r.CPUCelsius, 40) {
		t.Fatalf("expected first cpu reading, got %g", *r.CPUCelsius)
	}
}

func TestPowerRequiresWatts(t *testing.T) {
	r, err := readout.ParseString("power: 30% CPU 50", readout.Celsius)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if r.PowerWatts != nil {
		t.Fatalf("power without W unit should be ignored, got %g", *r.PowerWatts)
	}
	if r.CPUCelsius == nil {
		t.Fatalf("cpu reading should still be found")
	}
}

func TestNoReading(t *testing.T) {
	for _, input := range []string{"", "hello world", "GPU: 55C", "cpu_temp=50"} {
		if _, err := readout.ParseString(input, readout.Celsius); !errors.Is(err, readout.ErrNoReading) {
			t.Fatalf("%q: expected ErrNoReading, got %v", input, err)
		}
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sensors.txt")
	if err := os.WriteFile(path, []byte("Power = 8W\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := readout.Read(path, readout.Celsius)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if r.CPUCelsius != nil || r.PowerWatts == nil || *r.PowerWatts != 8 {
		t.Fatalf("unexpected reading %+v", r)
	}
	if _, err := readout.Read(filepath.Join(t.TempDir(), "missing"), readout.Celsius); err == nil {
		t.Fatalf("missing file should fail")
	}
}

func TestParseTempUnit(t *testing.T) {
	for in, want := range map[string]readout.TempUnit{"": readout.Celsius, "c": readout.Celsius, "F": readout.Fahrenheit, "℉": readout.Fahrenheit} {
		got, err := readout.ParseTempUnit(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s (%v)", in, want, got, err)
		}
	}
	if _, err := readout.ParseTempUnit("K"); err == nil {
		t.Fatalf("kelvin should be rejected")
	}
}
