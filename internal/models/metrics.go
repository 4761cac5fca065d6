package models

// AdherenceMetrics aggregates one user's diet compliance history.
// LongestOnDietStreak is the longest contiguous run of on-diet meals in
// chronological order.
type AdherenceMetrics struct {
	Total               int `json:"total"`
	OnDietCount         int `json:"onDietCount"`
	OffDietCount        int `json:"offDietCount"`
	LongestOnDietStreak int `json:"longestOnDietStreak"`
}
