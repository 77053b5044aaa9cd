// Package results defines the race result records exchanged with the
// results API, the seed list shown before any search, and the formatting
// helpers used when printing them.
//
// # Records
//
// AthleteRaceResult mirrors one element of the JSON array returned by
// POST /race-results:
//
//	{
//	  "id": "...",
//	  "athlete": {"id": "...", "firstName": "Brigid", "lastName": "Kosgei",
//	              "gender": "F", "yearOfBirth": 1994},
//	  "race": {"id": "...", "name": "Chicago Marathon", "date": "2019-10-13"},
//	  "timeSeconds": 8044, "gapSeconds": 0, "paceMinKm": 3.18,
//	  "category": "SF", "bibNumber": 1, "sportsClub": "...", "position": 1
//	}
//
// Race dates are accepted both as plain days and as RFC3339 timestamps.
//
// # Seed
//
// DefaultSeed ships a small built-in list. LoadSeed reads a replacement from
// a JSON file with the same shape as the API response.
package results
