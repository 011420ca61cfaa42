package calendar

import (
	"errors"
	"testing"
	"time"
)

type fakeFetcher struct {
	events    []Event
	reminders []Reminder
	err       error

	eventCalls    int
	reminderCalls int
	completed     []string
	created       []string
	createdEvents []string
	opened        []string
}

func (f *fakeFetcher) Events(daysAhead int) ([]Event, error) {
	f.eventCalls++
	return f.events, f.err
}

func (f *fakeFetcher) Reminders() ([]Reminder, error) {
	f.reminderCalls++
	return f.reminders, f.err
}

func (f *fakeFetcher) CompleteReminder(id string) error {
	f.completed = append(f.completed, id)
	return f.err
}

func (f *fakeFetcher) CreateReminder(title string, dueDate float64) error {
	f.created = append(f.created, title)
	return f.err
}

func (f *fakeFetcher) CreateEvent(title string, startDate, endDate float64, isAllDay bool, location string) error {
	f.createdEvents = append(f.createdEvents, title)
	return f.err
}

func (f *fakeFetcher) OpenEvent(id string, date float64) error {
	f.opened = append(f.opened, id)
	return f.err
}

func TestUpcomingEvents_Cached(t *testing.T) {
	fetcher := &fakeFetcher{events: []Event{{ID: "e1", Title: "Standup"}}}
	svc := NewServiceWithFetcher(fetcher)

	first := svc.UpcomingEvents(false)
	second := svc.UpcomingEvents(false)

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("Expected 1 event from both reads, got %d and %d", len(first), len(second))
	}
	if fetcher.eventCalls != 1 {
		t.Errorf("Expected 1 fetch with warm cache, got %d", fetcher.eventCalls)
	}
}

func TestUpcomingEvents_ForceRefresh(t *testing.T) {
	fetcher := &fakeFetcher{events: []Event{{ID: "e1"}}}
	svc := NewServiceWithFetcher(fetcher)

	svc.UpcomingEvents(false)
	svc.UpcomingEvents(true)

	if fetcher.eventCalls != 2 {
		t.Errorf("Expected force refresh to refetch, got %d calls", fetcher.eventCalls)
	}
}

func TestUpcomingEvents_CacheExpiry(t *testing.T) {
	fetcher := &fakeFetcher{events: []Event{{ID: "e1"}}}
	svc := NewServiceWithFetcher(fetcher)

	now := time.Now()
	svc.events.now = func() time.Time { return now }

	svc.UpcomingEvents(false)
	now = now.Add(cacheTTL + time.Second)
	svc.UpcomingEvents(false)

	if fetcher.eventCalls != 2 {
		t.Errorf("Expected expired cache to refetch, got %d calls", fetcher.eventCalls)
	}
}

func TestUpcomingEvents_FetchErrorReturnsEmpty(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("no access")}
	svc := NewServiceWithFetcher(fetcher)

	events := svc.UpcomingEvents(false)
	if events == nil || len(events) != 0 {
		t.Errorf("Expected empty slice on fetch error, got %v", events)
	}
}

func TestCompleteReminder_DropsFromCache(t *testing.T) {
	fetcher := &fakeFetcher{reminders: []Reminder{
		{ID: "r1", Title: "one"},
		{ID: "r2", Title: "two"},
	}}
	svc := NewServiceWithFetcher(fetcher)

	svc.Reminders(false)

	if err := svc.CompleteReminder("r1"); err != nil {
		t.Fatalf("CompleteReminder failed: %v", err)
	}

	got := svc.Reminders(false)
	if len(got) != 1 || got[0].ID != "r2" {
		t.Errorf("Expected only r2 cached after completion, got %v", got)
	}
	if fetcher.reminderCalls != 1 {
		t.Errorf("Expected no refetch after completion, got %d calls", fetcher.reminderCalls)
	}
}

func TestCreateReminder_InvalidatesCache(t *testing.T) {
	fetcher := &fakeFetcher{reminders: []Reminder{{ID: "r1"}}}
	svc := NewServiceWithFetcher(fetcher)

	svc.Reminders(false)
	if err := svc.CreateReminder("new task", 0); err != nil {
		t.Fatalf("CreateReminder failed: %v", err)
	}
	svc.Reminders(false)

	if fetcher.reminderCalls != 2 {
		t.Errorf("Expected refetch after create, got %d calls", fetcher.reminderCalls)
	}
	if len(fetcher.created) != 1 || fetcher.created[0] != "new task" {
		t.Errorf("Expected created reminder recorded, got %v", fetcher.created)
	}
}

func TestCreateEvent_InvalidatesCache(t *testing.T) {
	fetcher := &fakeFetcher{events: []Event{{ID: "e1"}}}
	svc := NewServiceWithFetcher(fetcher)

	svc.UpcomingEvents(false)
	if err := svc.CreateEvent("Dentist", 1000, 4600, false, "Downtown"); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	svc.UpcomingEvents(false)

	if fetcher.eventCalls != 2 {
		t.Errorf("Expected refetch after create, got %d calls", fetcher.eventCalls)
	}
	if len(fetcher.createdEvents) != 1 || fetcher.createdEvents[0] != "Dentist" {
		t.Errorf("Expected created event recorded, got %v", fetcher.createdEvents)
	}
}

func TestCreateEvent_FetcherErrorKeepsCache(t *testing.T) {
	fetcher := &fakeFetcher{events: []Event{{ID: "e1"}}}
	svc := NewServiceWithFetcher(fetcher)

	svc.UpcomingEvents(false)
	fetcher.err = errors.New("no access")
	if err := svc.CreateEvent("Dentist", 1000, 4600, false, ""); err == nil {
		t.Fatal("Expected error from failing fetcher")
	}
	fetcher.err = nil
	svc.UpcomingEvents(false)

	if fetcher.eventCalls != 1 {
		t.Errorf("Expected cache kept after failed create, got %d calls", fetcher.eventCalls)
	}
}

func TestOpenEvent_Delegates(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := NewServiceWithFetcher(fetcher)

	if err := svc.OpenEvent("e1", 1700000000); err != nil {
		t.Fatalf("OpenEvent failed: %v", err)
	}
	if len(fetcher.opened) != 1 || fetcher.opened[0] != "e1" {
		t.Errorf("Expected open recorded for e1, got %v", fetcher.opened)
	}
}

func TestCompleteReminder_FetcherError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("denied")}
	svc := NewServiceWithFetcher(fetcher)

	if err := svc.CompleteReminder("r1"); err == nil {
		t.Error("Expected error from failing fetcher")
	}
}
