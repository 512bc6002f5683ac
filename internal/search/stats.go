package search

import (
	"sort"

	"github.com/nill-home/face-insight/internal/store"
)

// LocationCount is the number of face observations at one camera location.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// DayCount is the number of face observations captured on one day.
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// CorpusStats summarizes one corpus snapshot.
type CorpusStats struct {
	TotalObservations int             `json:"total_observations"`
	WithFaces         int             `json:"with_faces"`
	TotalFaces        int             `json:"total_faces"`
	FullyIdentified   int             `json:"fully_identified"`
	BusiestLocation   string          `json:"busiest_location,omitempty"`
	Locations         []LocationCount `json:"locations"`
	DailyActivity     []DayCount      `json:"daily_activity"`
}

// ComputeStats aggregates corpus metadata: totals, per-location
// breakdown (busiest first) and per-day activity. No vectors involved.
func ComputeStats(corpus []store.ObservationRecord) CorpusStats {
	stats := CorpusStats{TotalObservations: len(corpus)}

	locations := make(map[string]int)
	days := make(map[string]int)

	for _, obs := range corpus {
		if !obs.HasFaces {
			continue
		}
		stats.WithFaces++
		stats.TotalFaces += obs.FaceCount
		if !IsUnknown(obs.FaceCount, obs.MatchedPersons) {
			stats.FullyIdentified++
		}

		if obs.CameraLocation != "" {
			locations[obs.CameraLocation] += obs.FaceCount
		}
		if !obs.Timestamp.IsZero() {
			days[obs.Timestamp.Format("2006-01-02")] += obs.FaceCount
		}
	}

	for loc, count := range locations {
		stats.Locations = append(stats.Locations, LocationCount{Location: loc, Count: count})
	}
	sort.Slice(stats.Locations, func(i, j int) bool {
		if stats.Locations[i].Count != stats.Locations[j].Count {
			return stats.Locations[i].Count > stats.Locations[j].Count
		}
		return stats.Locations[i].Location < stats.Locations[j].Location
	})
	if len(stats.Locations) > 0 {
		stats.BusiestLocation = stats.Locations[0].Location
	}

	for day, count := range days {
		stats.DailyActivity = append(stats.DailyActivity, DayCount{Date: day, Count: count})
	}
	sort.Slice(stats.DailyActivity, func(i, j int) bool {
		return stats.DailyActivity[i].Date < stats.DailyActivity[j].Date
	})

	return stats
}
