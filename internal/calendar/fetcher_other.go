//go:build !darwin

package calendar

import (
	"fmt"
	"runtime"
)

// stubFetcher stands in on platforms without a system calendar
// integration. Reads return empty, writes report the gap.
type stubFetcher struct{}

func newFetcher() Fetcher {
	return stubFetcher{}
}

func (stubFetcher) Events(int) ([]Event, error) {
	return nil, nil
}

func (stubFetcher) Reminders() ([]Reminder, error) {
	return nil, nil
}

func (stubFetcher) CompleteReminder(string) error {
	return fmt.Errorf("reminders not supported on %s", runtime.GOOS)
}

func (stubFetcher) CreateReminder(string, float64) error {
	return fmt.Errorf("reminders not supported on %s", runtime.GOOS)
}

func (stubFetcher) CreateEvent(string, float64, float64, bool, string) error {
	return fmt.Errorf("calendar events not supported on %s", runtime.GOOS)
}

func (stubFetcher) OpenEvent(string, float64) error {
	return fmt.Errorf("calendar events not supported on %s", runtime.GOOS)
}
