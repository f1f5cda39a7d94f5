// Package kendras holds the Jan Aushadhi kendra directory and the
// great-circle ranking used by the kendra-finder endpoint.
package kendras

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/medinfo/medinfo-api/logging"
)

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371.0

// ErrInvalidCoordinates rejects requests carrying no usable coordinate.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Kendra is one physical dispensary. Distance is computed per request
// relative to the caller's coordinate and never persisted.
type Kendra struct {
	Name     string  `json:"name" yaml:"name"`
	Address  string  `json:"address" yaml:"address"`
	City     string  `json:"city" yaml:"city"`
	Lat      float64 `json:"lat" yaml:"lat"`
	Lng      float64 `json:"lng" yaml:"lng"`
	Distance float64 `json:"distance,omitempty" yaml:"-"`
}

// dataset is the on-disk YAML layout.
type dataset struct {
	Kendras []Kendra `yaml:"kendras"`
}

// LoadDataset reads the kendra directory from a YAML file. Entries with a
// missing name or an out-of-range coordinate are skipped with a warning
// rather than failing the whole load.
func LoadDataset(path string) ([]Kendra, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading kendra dataset %s: %w", path, err)
	}

	var ds dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parsing kendra dataset %s: %w", path, err)
	}

	valid := make([]Kendra, 0, len(ds.Kendras))
	for _, k := range ds.Kendras {
		if k.Name == "" {
			logging.Warn("Skipping kendra entry without a name", "address", k.Address)
			continue
		}
		if k.Lat < -90 || k.Lat > 90 || k.Lng < -180 || k.Lng > 180 {
			logging.Warn("Skipping kendra with out-of-range coordinates", "name", k.Name, "lat", k.Lat, "lng", k.Lng)
			continue
		}
		valid = append(valid, k)
	}

	if len(valid) == 0 {
		return nil, fmt.Errorf("kendra dataset %s contains no valid entries", path)
	}
	return valid, nil
}

// Nearest ranks the list by great-circle distance from (lat, lng) and
// returns the closest k entries plus the single nearest one. The exact
// origin (0,0) is treated as "no coordinate provided" and rejected; any
// other on-range coordinate is accepted, including points on the equator
// or prime meridian.
func Nearest(lat, lng float64, list []Kendra, k int) ([]Kendra, *Kendra, error) {
	if lat == 0 && lng == 0 {
		return nil, nil, ErrInvalidCoordinates
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, nil, ErrInvalidCoordinates
	}
	if len(list) == 0 {
		return []Kendra{}, nil, nil
	}

	ranked := make([]Kendra, len(list))
	copy(ranked, list)
	for i := range ranked {
		d := haversineKm(lat, lng, ranked[i].Lat, ranked[i].Lng)
		ranked[i].Distance = math.Round(d*100) / 100
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	nearest := ranked[0]

	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked, &nearest, nil
}

// haversineKm computes the great-circle distance between two coordinates.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
