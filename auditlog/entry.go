package auditlog

import (
	"encoding/json"

	"github.com/Dosada05/tournament-admin/models"
)

// NewEntry собирает запись аудита; payload, который не удалось сериализовать, записывается как null.
func NewEntry(entity, method string, err error, payload interface{}) models.Log {
	entry := models.Log{Entity: entity, Method: method}
	if err != nil {
		entry.Error = err.Error()
	}
	if payload != nil {
		if raw, mErr := json.Marshal(payload); mErr == nil {
			entry.Payload = raw
		}
	}
	return entry
}
