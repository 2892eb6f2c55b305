package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/ovumcy/internal/models"
)

const MaxDailyLogNotesLength = 2000

var (
	ErrInvalidMood        = errors.New("invalid mood")
	ErrInvalidTemperature = errors.New("invalid temperature")
	ErrInvalidWeight      = errors.New("invalid weight")
)

type DailyLogInput struct {
	Mood           *string
	Temperature    *float64
	Weight         *float64
	SexualActivity bool
	Notes          string
}

// NormalizeDailyLogInput trims free text, drops empty moods and rejects values
// outside the plausible range for a body measurement.
func NormalizeDailyLogInput(input DailyLogInput) (DailyLogInput, error) {
	if input.Mood != nil {
		mood := strings.ToLower(strings.TrimSpace(*input.Mood))
		switch {
		case mood == "":
			input.Mood = nil
		case IsValidMood(mood):
			input.Mood = &mood
		default:
			return input, ErrInvalidMood
		}
	}
	if input.Temperature != nil && (*input.Temperature < 30 || *input.Temperature > 45) {
		return input, ErrInvalidTemperature
	}
	if input.Weight != nil && (*input.Weight <= 0 || *input.Weight > 500) {
		return input, ErrInvalidWeight
	}
	input.Notes = TrimDailyLogNotes(strings.TrimSpace(input.Notes))
	return input, nil
}

func IsValidMood(mood string) bool {
	switch mood {
	case models.MoodGreat, models.MoodGood, models.MoodOkay, models.MoodBad, models.MoodTerrible:
		return true
	default:
		return false
	}
}

func TrimDailyLogNotes(value string) string {
	runes := []rune(value)
	if len(runes) <= MaxDailyLogNotesLength {
		return value
	}
	return string(runes[:MaxDailyLogNotesLength])
}
