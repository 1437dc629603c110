// Package logging builds the slog loggers used across enconv.
//
// It provides a console handler tuned for interactive use (aligned level
// labels, component prefixes, key=value attrs) and a JSON handler for
// machine consumption, with file tee-ing controlled by configuration.
package logging
