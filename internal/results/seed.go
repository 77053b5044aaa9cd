package results

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultSeed returns the results shown before any search is submitted.
// Each call returns a fresh slice.
func DefaultSeed() []AthleteRaceResult {
	storica := Race{
		ID:       "5afc7b75-bacb-4d1c-94c8-50d69da39822",
		Name:     "Gara Storica",
		Date:     NewDate(2025, time.January, 22),
		Location: "Torino",
	}
	return []AthleteRaceResult{
		{
			ID: "97904f49-3d6d-4ed6-9f6c-c1800e0f63cb",
			Athlete: Athlete{
				ID:          "336165cc-66e8-47af-b5f2-6bfcd120b207",
				FirstName:   "Giovanni",
				LastName:    "Panetta",
				Gender:      GenderMale,
				YearOfBirth: 1971,
			},
			Race:       storica,
			TimeSecs:   3607,
			GapSecs:    0,
			PaceMinKm:  6.01,
			Category:   "SENIOR",
			BibNumber:  101,
			SportsClub: "CUS Torino",
			Position:   1,
		},
		{
			ID: "0d5b1f7e-52a4-4c5e-9b0e-6f7a2d4c8e11",
			Athlete: Athlete{
				ID:          "a3c2e9d4-1b7f-4e0a-8c55-2f9d6b3e7a10",
				FirstName:   "Chiara",
				LastName:    "Bosio",
				Gender:      GenderFemale,
				YearOfBirth: 1988,
			},
			Race:       storica,
			TimeSecs:   3712.4,
			GapSecs:    105.4,
			PaceMinKm:  6.19,
			Category:   "SF35",
			BibNumber:  214,
			SportsClub: "Atletica Canavesana",
			Position:   2,
		},
	}
}

// LoadSeed reads a JSON array of results from path. An empty path yields
// DefaultSeed.
func LoadSeed(path string) ([]AthleteRaceResult, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultSeed(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var seed []AthleteRaceResult
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if seed == nil {
		seed = []AthleteRaceResult{}
	}
	return seed, nil
}
