package service

import (
	"math"

	"jlpt_backend/internal/model"
)

// ProgressPolicy decides how a new attempt result merges with stored progress.
type ProgressPolicy int

const (
	// KeepLast overwrites progress with the newest attempt.
	KeepLast ProgressPolicy = iota
	// KeepBest never lets progress regress below the previous best.
	KeepBest
)

// merge folds a new correct count into the stored one under the policy.
func (p ProgressPolicy) merge(stored, latest int) int {
	if p == KeepBest && stored > latest {
		return stored
	}
	return latest
}

// scaleScore maps correct/total onto a test's score scale.
func scaleScore(correct, total, totalScore int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * float64(totalScore)))
}

// percent rounds correct/total to the nearest whole percent.
func percent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// truncPercent truncates toward zero instead of rounding, used where
// a partially done unit must not display as 100%.
func truncPercent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(correct) / float64(total) * 100)
}

// progressStatus maps a percent value onto the lesson status enum.
func progressStatus(pct int) string {
	if pct >= 100 {
		return model.StatusCompleted
	}
	return model.StatusInProgress
}
