// Package schedule expands a recurring weekly court template into concrete
// UTC time slots. The expansion is a pure function; inserting the slots (and
// rejecting duplicates via the court/start-time uniqueness constraint) is the
// service's job.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/tennis-system/models"
)

// Group — одна строка недельного расписания: дни недели (0=воскресенье..6)
// и времена начала "HH:MM" в местном времени корта.
type Group struct {
	Days  []int    `json:"days"`
	Times []string `json:"times"`
}

// Params описывает разворачиваемое расписание. TimezoneOffsetMinutes — в
// конвенции JS getTimezoneOffset: UTC минус местное время (UTC+5:30 → -330).
type Params struct {
	CourtName             string
	StartDate             time.Time
	EndDate               time.Time
	Groups                []Group
	SlotDurationMinutes   int
	TimezoneOffsetMinutes int
	TournamentID          *int
}

// Expand walks every calendar date from StartDate to EndDate inclusive.
// Dates are anchored to midnight UTC so the server's local timezone never
// shifts the weekday. The first group containing the date's weekday wins;
// groups are not merged. Each configured time becomes one slot: local wall
// clock on that date plus the timezone offset gives the true UTC start.
func Expand(p Params) ([]models.CourtSlot, error) {
	if p.CourtName == "" {
		return nil, fmt.Errorf("court name is required")
	}
	if p.SlotDurationMinutes <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", p.SlotDurationMinutes)
	}

	day := anchorUTC(p.StartDate)
	end := anchorUTC(p.EndDate)
	if end.Before(day) {
		return nil, fmt.Errorf("end date %s is before start date %s", end.Format("2006-01-02"), day.Format("2006-01-02"))
	}

	duration := time.Duration(p.SlotDurationMinutes) * time.Minute
	offset := time.Duration(p.TimezoneOffsetMinutes) * time.Minute

	var slots []models.CourtSlot
	for !day.After(end) {
		group := matchGroup(p.Groups, int(day.Weekday()))
		if group != nil {
			for _, t := range group.Times {
				hours, minutes, err := parseClock(t)
				if err != nil {
					return nil, err
				}
				start := day.
					Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute).
					Add(offset)
				slots = append(slots, models.CourtSlot{
					TournamentID: p.TournamentID,
					CourtName:    p.CourtName,
					StartTime:    start,
					EndTime:      start.Add(duration),
					IsActive:     true,
				})
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return slots, nil
}

func anchorUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// matchGroup возвращает первую группу, содержащую данный день недели.
func matchGroup(groups []Group, weekday int) *Group {
	for i := range groups {
		for _, d := range groups[i].Days {
			if d == weekday {
				return &groups[i]
			}
		}
	}
	return nil
}

func parseClock(s string) (hours, minutes int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hours, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	minutes, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return hours, minutes, nil
}
