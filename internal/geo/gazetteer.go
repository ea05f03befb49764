// Package geo provides the static gazetteer used to bucket reports onto map
// coordinates, and the intensity scale for the heatmap.
package geo

import "strings"

// Point is a latitude/longitude pair.
type Point struct {
	Lat float64
	Lng float64
}

// gazetteer maps known locality names (lowercased) to fixed coordinates.
// Entries cover the administrative districts of the Aurangabad municipal
// area. Locations outside this table are excluded from the heatmap.
var gazetteer = map[string]Point{
	"aurangabad city":            {19.8762, 75.3433},
	"aurangabad railway station": {19.8744, 75.3392},
	"cidco":                      {19.8942, 75.3521},
	"cidco n-1":                  {19.8976, 75.3467},
	"cidco n-2":                  {19.8958, 75.3492},
	"cidco n-3":                  {19.8939, 75.3517},
	"cidco n-4":                  {19.8921, 75.3542},
	"cidco n-5":                  {19.8903, 75.3567},
	"cidco n-6":                  {19.8885, 75.3592},
	"cidco n-7":                  {19.8867, 75.3617},
	"cidco n-8":                  {19.8849, 75.3642},
	"osmanpura":                  {19.8800, 75.3410},
	"agarkar mala":               {19.8815, 75.3450},
	"harsul":                     {19.8900, 75.3550},
	"hanuman nagar":              {19.8850, 75.3470},
	"market yard":                {19.8770, 75.3380},
	"gulmandi":                   {19.8767, 75.3117},
	"paithan gate":               {19.8819, 75.3150},
	"delhi gate":                 {19.8867, 75.3358},
	"shendra":                    {19.9000, 75.3600},
	"shendra midc":               {19.9000, 75.3600},
	"waluj":                      {19.8316, 75.2347},
	"chikalthana":                {19.9014, 75.3819},
	"auric":                      {19.9500, 75.4100},
}

// Lookup resolves a free-text location name against the gazetteer.
func Lookup(location string) (Point, bool) {
	p, ok := gazetteer[strings.ToLower(strings.TrimSpace(location))]
	return p, ok
}

// Intensity maps a report count at one location to a heatmap weight.
func Intensity(count int) float64 {
	switch {
	case count >= 8:
		return 0.9
	case count >= 5:
		return 0.7
	case count >= 3:
		return 0.5
	case count >= 2:
		return 0.3
	default:
		return 0.1
	}
}
