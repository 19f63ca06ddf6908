package game

import (
	"github.com/charmbracelet/log"
)

// EventLogger writes simulation events to a structured logger. The
// simulation itself never logs.
type EventLogger struct {
	logger *log.Logger
}

// NewEventLogger creates a listener that logs through logger
func NewEventLogger(logger *log.Logger) *EventLogger {
	return &EventLogger{logger: logger}
}

// OnEvent implements Listener
func (l *EventLogger) OnEvent(e Event) {
	switch e.Type {
	case EventRoundStarted:
		l.logger.Info("round started", "round", e.Count, "level", e.Level)
	case EventWaveSpawned:
		l.logger.Info("wave spawned", "level", e.Level, "enemies", e.Count, "score", e.Score)
	case EventEnemyDestroyed:
		l.logger.Debug("enemy destroyed", "x", int(e.X), "y", int(e.Y), "score", e.Score)
	case EventPlayerDestroyed:
		l.logger.Debug("player destroyed", "x", int(e.X), "y", int(e.Y))
	case EventGameOver:
		l.logger.Info("game over", "score", e.Score, "level", e.Level)
	}
}
