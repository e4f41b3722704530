// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package entity holds the cached collection of each backend entity together
// with the request status of its fetch, create and update operations.
//
// State changes are pure transitions over an immutable State value. A Store
// applies them under a lock as backend calls are dispatched and resolved.
package entity

import (
	"github.com/olegiv/folio-admin/internal/model"
)

// Op identifies one operation kind. Each kind has its own independent status.
type Op int

// Operation kinds.
const (
	OpFetch Op = iota
	OpCreate
	OpUpdate
)

func (o Op) String() string {
	switch o {
	case OpFetch:
		return "fetch"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// OpState is the status of one operation kind. Error is non-empty exactly
// when Status is failed. Success is only set by a succeeded create or update.
type OpState struct {
	Status  model.RequestStatus
	Error   string
	Success string

	// requestID names the latest dispatch; only its resolution may set a
	// terminal status.
	requestID string
}

// Loading reports whether the operation is in flight.
func (o OpState) Loading() bool {
	return o.Status == model.StatusLoading
}

// Failed reports whether the last attempt failed.
func (o OpState) Failed() bool {
	return o.Status == model.StatusFailed
}

// State is a snapshot of one entity store.
type State struct {
	Items  []model.Record
	Fetch  OpState
	Create OpState
	Update OpState
}

// NewState returns the initial state: no items, every operation idle.
func NewState() State {
	idle := OpState{Status: model.StatusIdle}
	return State{Items: []model.Record{}, Fetch: idle, Create: idle, Update: idle}
}

// Op returns the status of the given operation kind.
func (s State) Op(op Op) OpState {
	switch op {
	case OpCreate:
		return s.Create
	case OpUpdate:
		return s.Update
	default:
		return s.Fetch
	}
}

func (s State) withOp(op Op, o OpState) State {
	switch op {
	case OpCreate:
		s.Create = o
	case OpUpdate:
		s.Update = o
	default:
		s.Fetch = o
	}
	return s
}

// Pending starts a new attempt of op. Prior error and success messages are
// cleared immediately so stale text never shows during the new attempt.
func Pending(s State, op Op, requestID string) State {
	return s.withOp(op, OpState{Status: model.StatusLoading, requestID: requestID})
}

// current reports whether requestID is the latest dispatch of op.
func current(s State, op Op, requestID string) bool {
	o := s.Op(op)
	return o.Status == model.StatusLoading && o.requestID == requestID
}

// FetchFulfilled replaces the collection. It returns false and the state
// unchanged when requestID is not the latest fetch.
func FetchFulfilled(s State, requestID string, items []model.Record) (State, bool) {
	if !current(s, OpFetch, requestID) {
		return s, false
	}
	if items == nil {
		items = []model.Record{}
	}
	s.Items = items
	return s.withOp(OpFetch, OpState{Status: model.StatusSucceeded, requestID: requestID}), true
}

// CreateFulfilled records a successful create. The collection is left as is:
// the new record only shows after the next fetch.
func CreateFulfilled(s State, requestID, success string) (State, bool) {
	if !current(s, OpCreate, requestID) {
		return s, false
	}
	return s.withOp(OpCreate, OpState{Status: model.StatusSucceeded, Success: success, requestID: requestID}), true
}

// UpdateFulfilled records a successful update and shallow-merges updated into
// the item whose id or _id equals updated's id. A nil or id-less updated
// record leaves the collection untouched.
func UpdateFulfilled(s State, requestID, success string, updated model.Record) (State, bool) {
	if !current(s, OpUpdate, requestID) {
		return s, false
	}
	if id := updated.ID(); id != "" {
		s.Items = mergeByID(s.Items, id, updated)
	}
	return s.withOp(OpUpdate, OpState{Status: model.StatusSucceeded, Success: success, requestID: requestID}), true
}

// Rejected records a failed attempt of op with a non-empty message.
func Rejected(s State, op Op, requestID, message string) (State, bool) {
	if !current(s, op, requestID) {
		return s, false
	}
	if message == "" {
		message = "Request failed"
	}
	return s.withOp(op, OpState{Status: model.StatusFailed, Error: message, requestID: requestID}), true
}

// mergeByID returns a new slice in which the first matching item is replaced
// by its merge with updated. The input slice is never modified.
func mergeByID(items []model.Record, id string, updated model.Record) []model.Record {
	for i, item := range items {
		if !item.MatchesID(id) {
			continue
		}
		out := make([]model.Record, len(items))
		copy(out, items)
		out[i] = item.Merge(updated)
		return out
	}
	return items
}
