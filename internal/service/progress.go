package service

import (
	"fmt"
	"math"
	"sort"
	"time"
)

type ProgramProgress struct {
	CurrentDay      int
	DaysRemaining   int
	PercentComplete int
}

// CalculateProgress derives where "now" falls inside the program.
// CurrentDay is clamped to [1, durationDays]; day 1 is the start date
// itself.
func CalculateProgress(startDate string, durationDays int, now time.Time) (ProgramProgress, error) {
	var p ProgramProgress
	if durationDays <= 0 {
		return p, fmt.Errorf("program duration must be > 0")
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return p, fmt.Errorf("invalid program start date %q: %w", startDate, err)
	}
	today, err := time.Parse(dateLayout, now.Format(dateLayout))
	if err != nil {
		return p, err
	}

	daysPassed := int(today.Sub(start).Hours() / 24)
	p.CurrentDay = daysPassed + 1
	if p.CurrentDay < 1 {
		p.CurrentDay = 1
	}
	if p.CurrentDay > durationDays {
		p.CurrentDay = durationDays
	}
	p.DaysRemaining = durationDays - p.CurrentDay
	if p.DaysRemaining < 0 {
		p.DaysRemaining = 0
	}
	p.PercentComplete = int(math.Round(float64(p.CurrentDay) / float64(durationDays) * 100))
	return p, nil
}

// CalculateStreak counts the consecutive-day run of completed dates
// ending today or yesterday. A gap of more than one day resets to zero.
func CalculateStreak(completedDates []string, now time.Time) (int, error) {
	if len(completedDates) == 0 {
		return 0, nil
	}
	days := make([]time.Time, 0, len(completedDates))
	for _, d := range completedDates {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			return 0, fmt.Errorf("invalid completed date %q: %w", d, err)
		}
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	current, err := time.Parse(dateLayout, now.Format(dateLayout))
	if err != nil {
		return 0, err
	}

	streak := 0
	for _, d := range days {
		diff := int(current.Sub(d).Hours() / 24)
		if diff == 0 || diff == 1 {
			streak++
			current = d
			continue
		}
		break
	}
	return streak, nil
}

// CalculateCalories derives total calories from macro grams.
func CalculateCalories(proteinG, carbsG, fatsG float64) int {
	return int(math.Round(proteinG*4 + carbsG*4 + fatsG*9))
}
