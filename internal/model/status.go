// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// RequestStatus is the lifecycle of one asynchronous backend operation.
type RequestStatus string

// Request statuses.
const (
	StatusIdle      RequestStatus = "idle"
	StatusLoading   RequestStatus = "loading"
	StatusSucceeded RequestStatus = "succeeded"
	StatusFailed    RequestStatus = "failed"
)

// Terminal reports whether the status is succeeded or failed.
func (s RequestStatus) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}
