package schedule

import "math"

// Record is the scored outcome of one completed trial
type Record struct {
	Coherence float64
	Correct   bool
}

// Flag encodes Correct as 1 or 0
func (r Record) Flag() int {
	if r.Correct {
		return 1
	}
	return 0
}

// Summary aggregates a run's records
type Summary struct {
	Total    int
	Correct  int
	Accuracy float64 // percent, 0 when NoData
	NoData   bool
}

// Summarize counts records; an empty run is reported as NoData rather than dividing by zero
func Summarize(records []Record) Summary {
	s := Summary{Total: len(records)}
	if s.Total == 0 {
		s.NoData = true
		return s
	}
	for _, r := range records {
		if r.Correct {
			s.Correct++
		}
	}
	s.Accuracy = 100 * float64(s.Correct) / float64(s.Total)
	return s
}

// RoundedAccuracy returns the accuracy rounded to a whole percent
func (s Summary) RoundedAccuracy() int {
	return int(math.Round(s.Accuracy))
}
