// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "fmt"

// Stage is a step of the upload or retrieve pipeline. A failed request
// reports the stage it stopped at.
//
// StageHashing and StageKeyDerived cannot fail, and StageCompleted is the
// success state, so a PipelineError never carries them. They only show up
// as the "stage" field of progress logs.
type Stage int

const (
	StageReceived Stage = iota
	StageHashing
	StageDuplicateCheck
	StageKeyDerived
	StageEncrypted
	StageStored
	StageRegistered
	StageFetched
	StageDecrypted
	StageVerified
	StageCompleted
)

var stageNames = [...]string{
	StageReceived:       "received",
	StageHashing:        "hashing",
	StageDuplicateCheck: "duplicate_check",
	StageKeyDerived:     "key_derived",
	StageEncrypted:      "encrypted",
	StageStored:         "stored",
	StageRegistered:     "registered",
	StageFetched:        "fetched",
	StageDecrypted:      "decrypted",
	StageVerified:       "verified",
	StageCompleted:      "completed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// PipelineError is the failed state of a pipeline run. Stage is the step
// that could not be completed; Err matches one of the package sentinels.
type PipelineError struct {
	Stage Stage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func fail(stage Stage, err error) error {
	return &PipelineError{Stage: stage, Err: err}
}
