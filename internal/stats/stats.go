// Package stats computes aggregate metrics over a reconstructed
// conversation set.
package stats

import (
	"sort"
	"time"

	"github.com/hweber/raglog/internal/conversation"
)

// Summary holds aggregate metrics for one reconstruction pass.
type Summary struct {
	Conversations int
	Messages      int
	Documents     int
	Unanswered    int // messages carrying the no-response sentinel

	AvgMessages float64 // per conversation

	LongestID       string
	LongestMessages int

	First time.Time // earliest conversation start
	Last  time.Time // latest conversation start

	Daily []DayStats
}

// DayStats holds per-day conversation counts.
type DayStats struct {
	Day           string // YYYY-MM-DD
	Conversations int
	Messages      int
}

// Compute builds a Summary from a conversation set. noResponse is the
// sentinel text that marks unanswered messages.
func Compute(set *conversation.Set, noResponse string) Summary {
	var s Summary

	dayMap := make(map[string]*DayStats)

	for _, c := range set.List() {
		s.Conversations++
		s.Messages += c.MessageCount

		if s.First.IsZero() || c.StartTime.Before(s.First) {
			s.First = c.StartTime
		}
		if c.StartTime.After(s.Last) {
			s.Last = c.StartTime
		}

		if c.MessageCount > s.LongestMessages {
			s.LongestMessages = c.MessageCount
			s.LongestID = c.ID
		}

		day := c.StartTime.Format("2006-01-02")
		ds, ok := dayMap[day]
		if !ok {
			ds = &DayStats{Day: day}
			dayMap[day] = ds
		}
		ds.Conversations++
		ds.Messages += c.MessageCount

		for _, m := range c.Messages {
			s.Documents += len(m.Documents)
			if m.Response == noResponse {
				s.Unanswered++
			}
		}
	}

	if s.Conversations > 0 {
		s.AvgMessages = float64(s.Messages) / float64(s.Conversations)
	}

	for _, ds := range dayMap {
		s.Daily = append(s.Daily, *ds)
	}
	sort.Slice(s.Daily, func(i, j int) bool { return s.Daily[i].Day < s.Daily[j].Day })

	return s
}
