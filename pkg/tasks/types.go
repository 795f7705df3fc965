// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"encoding/json"
	"time"
)

type ScheduleRequest struct {
	Type         Kind            `json:"type" validate:"required"`
	Payload      json.RawMessage `json:"payload"`
	ScheduledFor *time.Time      `json:"scheduledFor,omitempty"`
	Delay        *Delay          `json:"delay,omitempty"`
}

// Callback is the message body the broker delivers back to the webhook.
type Callback struct {
	TaskID    string          `json:"taskId"`
	Type      Kind            `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	UserID    string          `json:"userId"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Outcome reports one execution. Recorded is false when no task record
// existed for the callback.
type Outcome struct {
	TaskID   string `json:"taskId"`
	Result   any    `json:"result,omitempty"`
	Recorded bool   `json:"recorded"`
}
