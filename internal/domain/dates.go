package domain

import "time"

// DateOnly truncates a timestamp to midnight UTC. Planned and actual dates
// are whole days; comparisons elsewhere assume this normalization.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// TimeFromPtr returns the pointed-to time, or the zero time for nil.
func TimeFromPtr(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return *p
}
