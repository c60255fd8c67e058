/*
bucket.go - Temporal bucketing of dated records

PURPOSE:
  Classifies records into past / current / future windows relative to
  "now". Current means today and tomorrow; future starts the day after
  tomorrow. The bucket is never persisted: it is a pure function of
  (now, date), recomputed on every query, so a record's bucket advances
  automatically as real time passes.

CAPTURED NOW:
  Callers capture "now" once and thread it through a whole bucketing
  pass. Re-sampling the clock mid-fold can split a single render across
  two days around midnight; BucketFor never reads the clock itself.

MISSING DATES:
  A record with no parseable date goes to current by convention: it
  needs immediate attention and must never be silently dropped.
*/
package ledger

import "time"

// Bucket is the past/current/future classification of a record.
type Bucket string

const (
	BucketPast    Bucket = "past"
	BucketCurrent Bucket = "current"
	BucketFuture  Bucket = "future"
)

// Buckets lists the three windows in chronological order.
var Buckets = []Bucket{BucketPast, BucketCurrent, BucketFuture}

// Midnight truncates t to the start of its day, preserving location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BucketFor classifies a record date against a captured now. Both are
// midnight-truncated before comparison; a nil date is current.
//
//	past:    date < today
//	current: today <= date < today+2d
//	future:  date >= today+2d
func BucketFor(now time.Time, date *time.Time) Bucket {
	if date == nil {
		return BucketCurrent
	}
	today := Midnight(now)
	day := Midnight(*date)
	switch {
	case day.Before(today):
		return BucketPast
	case day.Before(today.AddDate(0, 0, 2)):
		return BucketCurrent
	default:
		return BucketFuture
	}
}

// Partition splits entries into the three buckets using one captured
// now for the whole pass. Every entry lands in exactly one bucket.
func Partition(now time.Time, entries []Entry) map[Bucket][]Entry {
	out := map[Bucket][]Entry{
		BucketPast:    nil,
		BucketCurrent: nil,
		BucketFuture:  nil,
	}
	for _, e := range entries {
		b := BucketFor(now, e.Date)
		out[b] = append(out[b], e)
	}
	return out
}
