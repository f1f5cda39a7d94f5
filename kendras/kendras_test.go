package kendras

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

var testKendras = []Kendra{
	{Name: "Connaught Place", City: "New Delhi", Lat: 28.6315, Lng: 77.2167},
	{Name: "Andheri West", City: "Mumbai", Lat: 19.1197, Lng: 72.8464},
	{Name: "Koramangala", City: "Bengaluru", Lat: 12.9352, Lng: 77.6245},
	{Name: "T Nagar", City: "Chennai", Lat: 13.0418, Lng: 80.2341},
}

func TestNearestRejectsUnsetCoordinate(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lng  float64
	}{
		{"exact origin", 0, 0},
		{"latitude too high", 91, 77},
		{"latitude too low", -91, 77},
		{"longitude too high", 28, 181},
		{"longitude too low", 28, -181},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Nearest(tt.lat, tt.lng, testKendras, 10)
			if !errors.Is(err, ErrInvalidCoordinates) {
				t.Errorf("Nearest(%v, %v) error = %v, want ErrInvalidCoordinates", tt.lat, tt.lng, err)
			}
		})
	}
}

func TestNearestAcceptsEquatorAndMeridian(t *testing.T) {
	// (0, 77) and (28, 0) are real coordinates, only (0, 0) means unset.
	if _, _, err := Nearest(0, 77.2, testKendras, 10); err != nil {
		t.Errorf("Nearest on equator returned error: %v", err)
	}
	if _, _, err := Nearest(28.6, 0, testKendras, 10); err != nil {
		t.Errorf("Nearest on prime meridian returned error: %v", err)
	}
}

func TestNearestOrdering(t *testing.T) {
	// Query from central Delhi: Connaught Place must rank first.
	ranked, nearest, err := Nearest(28.6, 77.2, testKendras, 10)
	if err != nil {
		t.Fatalf("Nearest returned error: %v", err)
	}

	if nearest == nil || nearest.Name != "Connaught Place" {
		t.Fatalf("nearest = %+v, want Connaught Place", nearest)
	}

	for i := 1; i < len(ranked); i++ {
		if ranked[i].Distance < ranked[i-1].Distance {
			t.Errorf("ranking not ascending at %d: %v after %v", i, ranked[i].Distance, ranked[i-1].Distance)
		}
	}
}

func TestNearestSelfDistanceIsZero(t *testing.T) {
	ranked, _, err := Nearest(28.6315, 77.2167, testKendras, 1)
	if err != nil {
		t.Fatalf("Nearest returned error: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("len(ranked) = %d, want 1", len(ranked))
	}
	if ranked[0].Distance != 0 {
		t.Errorf("self distance = %v, want 0", ranked[0].Distance)
	}
}

func TestNearestTopK(t *testing.T) {
	ranked, _, err := Nearest(19.0, 72.8, testKendras, 2)
	if err != nil {
		t.Fatalf("Nearest returned error: %v", err)
	}
	if len(ranked) != 2 {
		t.Errorf("len(ranked) = %d, want 2", len(ranked))
	}
	if ranked[0].Name != "Andheri West" {
		t.Errorf("ranked[0] = %s, want Andheri West", ranked[0].Name)
	}
}

func TestNearestDoesNotMutateInput(t *testing.T) {
	list := []Kendra{
		{Name: "A", Lat: 10, Lng: 10},
		{Name: "B", Lat: 20, Lng: 20},
	}
	if _, _, err := Nearest(19.9, 19.9, list, 10); err != nil {
		t.Fatalf("Nearest returned error: %v", err)
	}
	if list[0].Name != "A" || list[0].Distance != 0 {
		t.Errorf("input slice was mutated: %+v", list[0])
	}
}

func TestNearestDistancesRounded(t *testing.T) {
	ranked, _, err := Nearest(28.7, 77.1, testKendras, 10)
	if err != nil {
		t.Fatalf("Nearest returned error: %v", err)
	}
	for _, k := range ranked {
		rounded := math.Round(k.Distance*100) / 100
		if k.Distance != rounded {
			t.Errorf("distance %v not rounded to 2 decimals", k.Distance)
		}
	}
}

func TestNearestEmptyDirectory(t *testing.T) {
	ranked, nearest, err := Nearest(28.6, 77.2, nil, 10)
	if err != nil {
		t.Fatalf("Nearest returned error: %v", err)
	}
	if len(ranked) != 0 {
		t.Errorf("len(ranked) = %d, want 0", len(ranked))
	}
	if nearest != nil {
		t.Errorf("nearest = %+v, want nil", nearest)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Delhi to Mumbai is roughly 1150 km.
	d := haversineKm(28.6315, 77.2167, 19.1197, 72.8464)
	if d < 1100 || d > 1200 {
		t.Errorf("haversineKm(Delhi, Mumbai) = %v, want ~1150", d)
	}
}

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kendras.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}
	return path
}

func TestLoadDataset(t *testing.T) {
	path := writeDataset(t, `
kendras:
  - name: "Kendra One"
    address: "Street 1"
    city: "Delhi"
    lat: 28.6
    lng: 77.2
  - name: ""
    address: "nameless, skipped"
    lat: 20.0
    lng: 70.0
  - name: "Bad Coords"
    lat: 95.0
    lng: 77.0
  - name: "Kendra Two"
    city: "Mumbai"
    lat: 19.1
    lng: 72.8
`)

	list, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("LoadDataset returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2 (invalid entries skipped)", len(list))
	}
	if list[0].Name != "Kendra One" || list[1].Name != "Kendra Two" {
		t.Errorf("unexpected entries: %+v", list)
	}
}

func TestLoadDatasetAllInvalid(t *testing.T) {
	path := writeDataset(t, `
kendras:
  - name: ""
    lat: 10
    lng: 10
`)
	if _, err := LoadDataset(path); err == nil {
		t.Error("LoadDataset should fail when no valid entries remain")
	}
}

func TestLoadDatasetMissingFile(t *testing.T) {
	if _, err := LoadDataset(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadDataset should fail for a missing file")
	}
}

func TestLoadDatasetMalformedYAML(t *testing.T) {
	path := writeDataset(t, "kendras: [not: closed")
	if _, err := LoadDataset(path); err == nil {
		t.Error("LoadDataset should fail for malformed YAML")
	}
}
