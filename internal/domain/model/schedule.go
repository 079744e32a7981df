package model

import "time"

// DefaultTimezone applies when neither the calendar nor an override names
// one.
const DefaultTimezone = "Europe/Madrid"

// authorLead is how long before qualifying the question author must
// publish.
const authorLead = 4 * time.Hour

// QualifyingStart resolves when qualifying begins for a race, applying
// any schedule override stored in the snapshot. It reports false when the
// calendar carries no usable date and time.
func (s State) QualifyingStart(r Race) (time.Time, bool) {
	var ov RaceOverride
	if o, found := s.Meta.RaceOverrides[r.Key]; found {
		ov = o
	}
	date := firstNonEmpty(ov.QDate, r.QDate, r.DateLocal)
	clock := firstNonEmpty(ov.QTime, r.QTime)
	tz := firstNonEmpty(ov.Timezone, r.Timezone, DefaultTimezone)
	if date == "" || clock == "" {
		return time.Time{}, false
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// RaceCutoff is the automatic bet deadline: one minute before qualifying.
func (s State) RaceCutoff(r Race) (time.Time, bool) {
	q, ok := s.QualifyingStart(r)
	if !ok {
		return time.Time{}, false
	}
	return q.Add(-time.Minute), true
}

// AuthorCutoff is when the question author's editing window closes.
func (s State) AuthorCutoff(r Race) (time.Time, bool) {
	q, ok := s.QualifyingStart(r)
	if !ok {
		return time.Time{}, false
	}
	return q.Add(-authorLead), true
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
