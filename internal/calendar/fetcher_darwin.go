//go:build darwin

package calendar

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// macFetcher reads Calendar and Reminders through AppleScript. The
// scripts emit one record per line with fields joined by "||".
type macFetcher struct{}

func newFetcher() Fetcher {
	return macFetcher{}
}

func runScript(script string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		return "", fmt.Errorf("osascript: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (macFetcher) Events(daysAhead int) ([]Event, error) {
	script := fmt.Sprintf(`
set sep to "||"
set nl to linefeed
set output to ""
set nowDate to current date
set endDate to nowDate + (%d * days)
tell application "Calendar"
	repeat with cal in calendars
		set theEvents to (events of cal whose start date is greater than or equal to nowDate and start date is less than endDate)
		repeat with ev in theEvents
			set evLoc to ""
			try
				set evLoc to location of ev
			end try
			set output to output & (uid of ev) & sep & (summary of ev) & sep & ((start date of ev) - (date "Thursday, January 1, 1970 at 00:00:00")) & sep & ((end date of ev) - (date "Thursday, January 1, 1970 at 00:00:00")) & sep & evLoc & sep & (allday event of ev) & nl
		end repeat
	end repeat
end tell
return output`, daysAhead)

	out, err := runScript(script)
	if err != nil {
		return nil, err
	}

	var events []Event
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Split(strings.TrimSpace(line), "||")
		if len(parts) < 6 || parts[1] == "" {
			continue
		}
		start, _ := strconv.ParseFloat(parts[2], 64)
		end, _ := strconv.ParseFloat(parts[3], 64)
		events = append(events, Event{
			ID:        parts[0],
			Title:     parts[1],
			StartDate: start,
			EndDate:   end,
			Location:  parts[4],
			IsAllDay:  parts[5] == "true",
			Color:     defaultEventColor,
		})
	}
	sortEventsByStart(events)
	return events, nil
}

func sortEventsByStart(events []Event) {
	for i := 1; i < len(events); i++ {
		for j := i; j > 0 && events[j].StartDate < events[j-1].StartDate; j-- {
			events[j], events[j-1] = events[j-1], events[j]
		}
	}
}

func (macFetcher) Reminders() ([]Reminder, error) {
	script := `
set sep to "||"
set nl to linefeed
set output to ""
tell application "Reminders"
	repeat with lst in lists
		set listName to name of lst
		repeat with rem in (reminders of lst whose completed is false)
			set dueTS to ""
			try
				set dueTS to ((due date of rem) - (date "Thursday, January 1, 1970 at 00:00:00"))
			end try
			set output to output & (id of rem) & sep & (name of rem) & sep & dueTS & sep & (priority of rem) & sep & listName & nl
		end repeat
	end repeat
end tell
return output`

	out, err := runScript(script)
	if err != nil {
		return nil, err
	}

	var reminders []Reminder
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Split(strings.TrimSpace(line), "||")
		if len(parts) < 5 || parts[1] == "" {
			continue
		}
		due, _ := strconv.ParseFloat(parts[2], 64)
		priority, _ := strconv.Atoi(parts[3])
		reminders = append(reminders, Reminder{
			ID:        parts[0],
			Title:     parts[1],
			DueDate:   due,
			Priority:  priority,
			ListName:  parts[4],
			ListColor: defaultReminderColor,
		})
	}
	return reminders, nil
}

func (macFetcher) CompleteReminder(id string) error {
	script := fmt.Sprintf(`
tell application "Reminders"
	set completed of (first reminder whose id is %q) to true
end tell`, id)
	_, err := runScript(script)
	return err
}

func (macFetcher) CreateReminder(title string, dueDate float64) error {
	var due string
	if dueDate > 0 {
		due = fmt.Sprintf(`, due date:((date "Thursday, January 1, 1970 at 00:00:00") + %d)`, int64(dueDate))
	}
	script := fmt.Sprintf(`
tell application "Reminders"
	make new reminder with properties {name:%q%s}
end tell`, title, due)
	_, err := runScript(script)
	return err
}

func (macFetcher) CreateEvent(title string, startDate, endDate float64, isAllDay bool, location string) error {
	var loc string
	if location != "" {
		loc = fmt.Sprintf(`, location:%q`, location)
	}
	script := fmt.Sprintf(`
set epoch to (date "Thursday, January 1, 1970 at 00:00:00")
tell application "Calendar"
	tell first calendar whose writable is true
		make new event with properties {summary:%q, start date:(epoch + %d), end date:(epoch + %d), allday event:%t%s}
	end tell
end tell`, title, int64(startDate), int64(endDate), isAllDay, loc)
	_, err := runScript(script)
	return err
}

// OpenEvent switches Calendar to day view on the event's date. The
// script addresses the view by date rather than event id because the
// scripting interface cannot select an individual event.
func (macFetcher) OpenEvent(_ string, date float64) error {
	t := time.Unix(int64(date), 0)
	script := fmt.Sprintf(`
tell application "Calendar"
	activate
	switch view to day view
	set targetDate to current date
	set year of targetDate to %d
	set month of targetDate to %d
	set day of targetDate to %d
	set time of targetDate to (%d * 3600 + %d * 60)
	switch view to targetDate
end tell`, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
	_, err := runScript(script)
	return err
}
