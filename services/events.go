package services

import "github.com/google/uuid"

const (
	EventResultUpdated   = "RESULT_UPDATED"
	EventScheduleUpdated = "SCHEDULE_UPDATED"
	EventGoalAdded       = "GOAL_ADDED"
)

// EventPublisher рассылает события матча подписчикам. Не блокирует и не возвращает ошибок.
type EventPublisher interface {
	PublishMatchEvent(matchID uuid.UUID, eventType string, payload interface{})
}

type noopPublisher struct{}

func (noopPublisher) PublishMatchEvent(uuid.UUID, string, interface{}) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
