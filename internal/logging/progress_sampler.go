package logging

import "strings"

// ProgressSampler suppresses repetitive progress logs while preserving signal
// when the scan label or percentage bucket changes.
type ProgressSampler struct {
	bucketSize float64
	lastScan   string
	lastBucket int
}

// NewProgressSampler constructs a sampler that emits when the percent crosses
// bucket boundaries (default 5%) or when the scan label changes.
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 5
	}
	return &ProgressSampler{bucketSize: bucketSize, lastBucket: -1}
}

// ShouldLog reports whether a progress event should be logged. Percent can be
// negative to indicate "unknown"; scan is trimmed before comparison.
func (s *ProgressSampler) ShouldLog(percent float64, scan string) bool {
	if s == nil {
		return true
	}
	scan = strings.TrimSpace(scan)
	emit := false
	if scan != "" && scan != s.lastScan {
		s.lastScan = scan
		emit = true
		s.lastBucket = -1
	}
	if percent >= 0 {
		bucket := int(percent / s.bucketSize)
		if percent >= 100 {
			bucket = int(100 / s.bucketSize)
		}
		if bucket > s.lastBucket {
			s.lastBucket = bucket
			emit = true
		}
	}
	return emit
}

// Reset clears the sampler state (e.g. when a new scan starts).
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.lastScan = ""
	s.lastBucket = -1
}
