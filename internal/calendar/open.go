package calendar

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenCalendarApp launches the platform calendar application.
func OpenCalendarApp() error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", "-a", "Calendar").Start()
	case "windows":
		return exec.Command("explorer", "outlookcal:").Start()
	case "linux":
		if err := exec.Command("xdg-open", "calendar:").Start(); err == nil {
			return nil
		}
		return exec.Command("gnome-calendar").Start()
	}
	return fmt.Errorf("no calendar app known for %s", runtime.GOOS)
}

// OpenRemindersApp launches the platform task application.
func OpenRemindersApp() error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", "-a", "Reminders").Start()
	case "windows":
		return exec.Command("explorer", "ms-to-do:").Start()
	case "linux":
		if err := exec.Command("xdg-open", "todo:").Start(); err == nil {
			return nil
		}
		return exec.Command("gnome-todo").Start()
	}
	return fmt.Errorf("no reminders app known for %s", runtime.GOOS)
}

// OpenPrivacySettings opens the OS privacy pane for calendar access.
func OpenPrivacySettings() error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open",
			"x-apple.systempreferences:com.apple.preference.security?Privacy_Calendars").Start()
	case "windows":
		return exec.Command("explorer", "ms-settings:privacy-calendar").Start()
	case "linux":
		return exec.Command("xdg-open", "help:privacy").Start()
	}
	return fmt.Errorf("no privacy settings known for %s", runtime.GOOS)
}
