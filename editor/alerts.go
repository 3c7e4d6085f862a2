package editor

import (
	"time"
)

type (
	// Alerts is the list of transient messages shown on top of the board:
	// export results, recovery notices, player trouble. Alerts with a name
	// replace an earlier alert with the same name instead of stacking.
	Alerts Model

	Alert struct {
		Name      string
		Priority  AlertPriority
		Message   string
		Duration  time.Duration
		FadeLevel float64
	}

	AlertPriority int
)

const (
	Info AlertPriority = iota
	Warning
	Error
)

const (
	defaultAlertDuration = 3 * time.Second
	alertFadeIn          = 100 * time.Millisecond
	alertFadeOut         = 500 * time.Millisecond
	maxAlerts            = 5
)

func (m *Model) Alerts() *Alerts { return (*Alerts)(m) }

func (m *Alerts) Add(message string, priority AlertPriority) {
	m.AddAlert(Alert{
		Priority: priority,
		Message:  message,
		Duration: defaultAlertDuration,
	})
}

// AddNamed adds an alert that replaces any previous alert with the same name,
// keeping its fade so repeated updates do not flicker.
func (m *Alerts) AddNamed(name, message string, priority AlertPriority) {
	m.AddAlert(Alert{
		Name:     name,
		Priority: priority,
		Message:  message,
		Duration: defaultAlertDuration,
	})
}

func (m *Alerts) AddAlert(a Alert) {
	for i := range m.alerts {
		if a.Name != "" && m.alerts[i].Name == a.Name {
			a.FadeLevel = m.alerts[i].FadeLevel
			m.alerts[i] = a
			return
		}
	}
	if len(m.alerts) >= maxAlerts {
		m.alerts = append(m.alerts[:0], m.alerts[len(m.alerts)-maxAlerts+1:]...)
	}
	m.alerts = append(m.alerts, a)
}

// Iterate is an iterator over the current alerts, in the order they were
// added.
func (m *Alerts) Iterate(yield func(index int, alert Alert) bool) {
	for i, a := range m.alerts {
		if !yield(i, a) {
			break
		}
	}
}

func (m *Alerts) Count() int { return len(m.alerts) }

// Update advances the fade animations and expires old alerts. It returns true
// as long as any alert is still animating, so the GUI knows to keep
// redrawing.
func (m *Alerts) Update(d time.Duration) (animating bool) {
	retained := m.alerts[:0]
	for _, a := range m.alerts {
		if a.Duration > 0 {
			a.Duration -= d
			if a.FadeLevel < 1 {
				a.FadeLevel += float64(d) / float64(alertFadeIn)
				if a.FadeLevel > 1 {
					a.FadeLevel = 1
				}
				animating = true
			}
			retained = append(retained, a)
			continue
		}
		a.FadeLevel -= float64(d) / float64(alertFadeOut)
		if a.FadeLevel > 0 {
			animating = true
			retained = append(retained, a)
		}
	}
	m.alerts = retained
	return animating
}
