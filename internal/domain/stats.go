package domain

import "math"

type Stats struct {
	TotalGames     int
	SetupGames     int
	TotalLibraries int
	SuccessRate    int
}

// ProjectStats derives dashboard counters from an inventory snapshot. An
// empty inventory projects a 100% success rate so that a fresh session does
// not present as a failure state.
func ProjectStats(games []Game, libraries []Library) Stats {
	stats := Stats{
		TotalGames:     len(games),
		TotalLibraries: len(libraries),
	}

	for _, game := range games {
		if game.HasCompatLibraries {
			stats.SetupGames++
		}
	}

	if stats.TotalGames == 0 {
		stats.SuccessRate = 100
		return stats
	}

	stats.SuccessRate = int(math.Round(float64(stats.SetupGames) / float64(stats.TotalGames) * 100))

	return stats
}
