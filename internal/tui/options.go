package tui

import "strings"

// Option defines a functional option for model configuration.
type Option func(*Model)

// WithOwnerID scopes every service call to the given owner.
func WithOwnerID(ownerID string) Option {
	return func(m *Model) {
		if v := strings.TrimSpace(ownerID); v != "" {
			m.ownerID = v
		}
	}
}

// WithActivityLimit caps how many activity entries the activity view loads.
func WithActivityLimit(limit int) Option {
	return func(m *Model) {
		if limit >= 0 {
			m.activityLimit = limit
		}
	}
}

// WithShowDescriptions controls whether list rows render descriptions.
func WithShowDescriptions(show bool) Option {
	return func(m *Model) {
		m.showDescriptions = show
	}
}
