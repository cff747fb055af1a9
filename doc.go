package airtable

// Package airtable provides:
//
// - Declarative shape contracts for Airtable record payloads (see shape/)
// - A structural validator with a stable error model via Issues (code, path, message)
// - A tagged FieldValue union classified once at the decode boundary
// - A thin Workspace resource wrapper over a pluggable Requester
//
// Design policy:
// - Keep only public APIs in the root package; shape construction lives under shape/.
// - The validator is a pass/fail gate over already-decoded values: it returns the
//   input unchanged on success and never coerces or copies.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	m, err := airtable.DecodeRecord(payload)
//	rec, err := airtable.ValidateOne(airtable.RecordDict, m)
//
//	fv, err := airtable.ClassifyFieldValue(rec["fields"].(map[string]any)["Name"])
