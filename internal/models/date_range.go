package models

import "time"

// RangePreset names the quick date filters offered alongside a custom range.
type RangePreset string

const (
	RangeLastDay    RangePreset = "1d"
	RangeLast3Days  RangePreset = "3d"
	RangeLastWeek   RangePreset = "1w"
	RangeLast2Weeks RangePreset = "2w"
	RangeCustom     RangePreset = "custom"
)

// DateRange filters memos by creation time. For a custom range, unset bounds
// default to the last 7 days ending now.
type DateRange struct {
	Preset RangePreset
	From   *int64 // unix millis, custom only
	To     *int64 // unix millis, custom only
}

func days(n int64) int64 { return n * 24 * 60 * 60 * 1000 }

// Resolve computes the concrete [from, to] bounds in unix millis.
func (r DateRange) Resolve(now time.Time) (int64, int64) {
	end := now.UnixMilli()
	switch r.Preset {
	case RangeLastDay:
		return end - days(1), end
	case RangeLast3Days:
		return end - days(3), end
	case RangeLastWeek:
		return end - days(7), end
	case RangeLast2Weeks:
		return end - days(14), end
	default:
		from := end - days(7)
		if r.From != nil {
			from = *r.From
		}
		to := end
		if r.To != nil {
			to = *r.To
		}
		return from, to
	}
}

// Contains reports whether a creation timestamp falls inside the range.
func (r DateRange) Contains(createdAt int64, now time.Time) bool {
	from, to := r.Resolve(now)
	return createdAt >= from && createdAt <= to
}
