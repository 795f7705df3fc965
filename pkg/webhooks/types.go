// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

// CallbackRequest is an inbound broker delivery before verification.
type CallbackRequest struct {
	Signature string
	URL       string
	Body      []byte
	TaskID    string
}

type CallbackResponse struct {
	Success  bool   `json:"success"`
	TaskID   string `json:"taskId,omitempty"`
	Result   any    `json:"result,omitempty"`
	Recorded *bool  `json:"recorded,omitempty"`
	Error    string `json:"error,omitempty"`
}
