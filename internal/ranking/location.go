package ranking

import (
	"strings"

	"github.com/jonathan/fit-scorer/internal/matching"
)

// Location scores by bucket.
const (
	LocationRemote   = 100
	LocationMatch    = 100
	LocationRegion   = 60
	LocationNeutral  = 50
	LocationMismatch = 30
)

const remoteTerm = "remote"

// ScoreLocation buckets two normalized location strings. Remote on either side wins,
// either as the substring "remote" or a remote-phrasing alias;
// a missing side is neutral; otherwise a fuzzy match either way, then a shared macro
// region, then mismatch.
func ScoreLocation(m *matching.Matcher, regions []string, applicantLoc, jobLoc string) int {
	if isRemote(m, applicantLoc) || isRemote(m, jobLoc) {
		return LocationRemote
	}
	if applicantLoc == "" || jobLoc == "" {
		return LocationNeutral
	}
	if m.Matches(applicantLoc, jobLoc, true) || m.Matches(jobLoc, applicantLoc, true) {
		return LocationMatch
	}
	for _, region := range regions {
		if m.Matches(applicantLoc, region, true) && m.Matches(jobLoc, region, true) {
			return LocationRegion
		}
	}
	return LocationMismatch
}

func isRemote(m *matching.Matcher, loc string) bool {
	return strings.Contains(loc, remoteTerm) || m.Matches(loc, remoteTerm, true)
}
