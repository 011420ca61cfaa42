package plugins

import (
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// EventPluginsChanged tells the frontend to rescan its plugin list.
const EventPluginsChanged = "plugins-changed"

// Notifier pushes events to the frontend.
type Notifier interface {
	Emit(event string, data ...interface{})
}

// Watcher emits EventPluginsChanged when the plugins directory changes.
// Rapid bursts, such as an install copying many files, are debounced
// into a single event.
type Watcher struct {
	manager  *Manager
	notify   Notifier
	fw       *fsnotify.Watcher
	debounce time.Duration
	done     chan struct{}
}

// NewWatcher starts watching the manager's directory.
func NewWatcher(manager *Manager, notify Notifier) (*Watcher, error) {
	if err := os.MkdirAll(manager.Dir(), 0o755); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(manager.Dir()); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		manager:  manager,
		notify:   notify,
		fw:       fw,
		debounce: 500 * time.Millisecond,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logrus.Warnf("plugins: watch error: %v", err)
		case <-timerC:
			timer = nil
			timerC = nil
			logrus.Debug("plugins: directory changed, notifying frontend")
			w.notify.Emit(EventPluginsChanged)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}
