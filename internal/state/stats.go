package state

import "github.com/five82/atlas/internal/restcountries"

// Statistics summarizes the raw collection.
//
// For an empty collection the extremum pointers are nil and
// AveragePopulation is 0 with HasAverage false.
type Statistics struct {
	TotalCountries     int
	TotalPopulation    int64
	AveragePopulation  float64
	HasAverage         bool
	Largest            *restcountries.Country
	Smallest           *restcountries.Country
	MostPopulated      *restcountries.Country
	LeastPopulated     *restcountries.Country
	RegionDistribution map[string]int
	PopulationByRegion map[string]int64
}

// ComputeStatistics summarizes items. Ties on a maximum go to the earliest
// entry and ties on a minimum to the latest, matching a stable descending
// sort.
func ComputeStatistics(items []restcountries.Country) Statistics {
	stats := Statistics{
		TotalCountries:     len(items),
		RegionDistribution: make(map[string]int),
		PopulationByRegion: make(map[string]int64),
	}
	if len(items) == 0 {
		return stats
	}

	var largest, smallest, most, least int
	for i, c := range items {
		stats.TotalPopulation += c.Population
		stats.RegionDistribution[c.Region]++
		stats.PopulationByRegion[c.Region] += c.Population

		if c.Area > items[largest].Area {
			largest = i
		}
		if c.Area <= items[smallest].Area {
			smallest = i
		}
		if c.Population > items[most].Population {
			most = i
		}
		if c.Population <= items[least].Population {
			least = i
		}
	}
	stats.AveragePopulation = float64(stats.TotalPopulation) / float64(len(items))
	stats.HasAverage = true
	stats.Largest = ptr(items[largest])
	stats.Smallest = ptr(items[smallest])
	stats.MostPopulated = ptr(items[most])
	stats.LeastPopulated = ptr(items[least])
	return stats
}

func ptr(c restcountries.Country) *restcountries.Country {
	return &c
}
