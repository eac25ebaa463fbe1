package domain

import (
	"errors"
	"time"
)

var ErrReminderNotFound = errors.New("reminder not found")

// Reminder is a scheduled care note for one of the user's animals.
// Status true means planned, false means done.
type Reminder struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	AnimalName string    `json:"animal_name"`
	Message    string    `json:"assistant_sms"`
	Date       time.Time `json:"date_assistant"`
	Planned    bool      `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
