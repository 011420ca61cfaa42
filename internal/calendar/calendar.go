// Package calendar surfaces upcoming events and reminders from the
// system calendar, with short-lived caching so the widget can poll
// freely without hammering the OS.
package calendar

import "github.com/sirupsen/logrus"

// Event is one calendar entry in the upcoming window.
type Event struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	StartDate float64 `json:"start_date"`
	EndDate   float64 `json:"end_date"`
	Location  string  `json:"location,omitempty"`
	IsAllDay  bool    `json:"is_all_day"`
	Color     string  `json:"color"`
}

// Reminder is one incomplete task from the system reminders list.
type Reminder struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	DueDate     float64 `json:"due_date,omitempty"`
	Priority    int     `json:"priority"`
	IsCompleted bool    `json:"is_completed"`
	ListName    string  `json:"list_name"`
	ListColor   string  `json:"list_color"`
}

const (
	defaultEventColor    = "#34c759"
	defaultReminderColor = "#0a84ff"
	upcomingDays         = 7
)

// Fetcher reads events and reminders from the platform. Non-macOS
// builds return empty results.
type Fetcher interface {
	Events(daysAhead int) ([]Event, error)
	Reminders() ([]Reminder, error)
	CompleteReminder(id string) error
	CreateReminder(title string, dueDate float64) error
	CreateEvent(title string, startDate, endDate float64, isAllDay bool, location string) error
	OpenEvent(id string, date float64) error
}

// Service wraps a fetcher with TTL caches.
type Service struct {
	fetcher   Fetcher
	events    *cache[[]Event]
	reminders *cache[[]Reminder]
}

// NewService builds a calendar service over the platform fetcher.
func NewService() *Service {
	return NewServiceWithFetcher(newFetcher())
}

// NewServiceWithFetcher is the injectable constructor used by tests.
func NewServiceWithFetcher(f Fetcher) *Service {
	return &Service{
		fetcher:   f,
		events:    newCache[[]Event](),
		reminders: newCache[[]Reminder](),
	}
}

// UpcomingEvents returns events for the next seven days, cached for ten
// minutes unless forceRefresh is set. Fetch failures fall back to an
// empty list so the widget renders.
func (s *Service) UpcomingEvents(forceRefresh bool) []Event {
	if !forceRefresh {
		if events, ok := s.events.get(); ok {
			return events
		}
	}

	events, err := s.fetcher.Events(upcomingDays)
	if err != nil {
		logrus.Debugf("calendar: events fetch failed: %v", err)
		return []Event{}
	}
	if events == nil {
		events = []Event{}
	}
	s.events.set(events)
	return events
}

// Reminders returns incomplete reminders, cached like events.
func (s *Service) Reminders(forceRefresh bool) []Reminder {
	if !forceRefresh {
		if reminders, ok := s.reminders.get(); ok {
			return reminders
		}
	}

	reminders, err := s.fetcher.Reminders()
	if err != nil {
		logrus.Debugf("calendar: reminders fetch failed: %v", err)
		return []Reminder{}
	}
	if reminders == nil {
		reminders = []Reminder{}
	}
	s.reminders.set(reminders)
	return reminders
}

// CompleteReminder marks a reminder done and drops it from the cache
// immediately so the widget updates without waiting for a refetch.
func (s *Service) CompleteReminder(id string) error {
	if err := s.fetcher.CompleteReminder(id); err != nil {
		return err
	}

	if reminders, ok := s.reminders.get(); ok {
		kept := reminders[:0]
		for _, r := range reminders {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		s.reminders.set(kept)
	}
	return nil
}

// CreateReminder adds a reminder and invalidates the cache so the next
// read picks it up.
func (s *Service) CreateReminder(title string, dueDate float64) error {
	if err := s.fetcher.CreateReminder(title, dueDate); err != nil {
		return err
	}
	s.reminders.invalidate()
	return nil
}

// CreateEvent adds an event to the default calendar and invalidates the
// events cache so the next read picks it up.
func (s *Service) CreateEvent(title string, startDate, endDate float64, isAllDay bool, location string) error {
	if err := s.fetcher.CreateEvent(title, startDate, endDate, isAllDay, location); err != nil {
		return err
	}
	s.events.invalidate()
	return nil
}

// OpenEvent brings the calendar app to the day containing the event.
func (s *Service) OpenEvent(id string, date float64) error {
	return s.fetcher.OpenEvent(id, date)
}
