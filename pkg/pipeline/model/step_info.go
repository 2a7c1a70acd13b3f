package model

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// StepInfo describes a step of a running pipeline.
type StepInfo struct {
	// Index is the position of the step in the full definition.
	Index       int
	Variant     string
	Fingerprint string
}

// Name returns a short human readable name, unique within a definition.
func (s StepInfo) Name() string {
	if s.Index < 0 {
		return s.Variant
	}

	return strconv.Itoa(s.Index) + ":" + ShortVariant(s.Variant)
}

// RunInfo describes one execution of a pipeline.
type RunInfo struct {
	ID string
	// Start and Stop are the resolved bounds of the executed range.
	Start, Stop int
	// Total is the number of steps of the definition.
	Total int
}

// NewRun returns a RunInfo with a fresh identifier.
func NewRun(start, stop, total int) RunInfo {
	return RunInfo{
		ID:    uuid.NewString(),
		Start: start,
		Stop:  stop,
		Total: total,
	}
}

// Steps returns the number of executed steps.
func (r RunInfo) Steps() int {
	return r.Stop - r.Start
}

// Partial reports whether only a part of the definition is executed.
func (r RunInfo) Partial() bool {
	return r.Steps() != r.Total
}

// ShortVariant strips the import path of a variant, keeping the package name.
func ShortVariant(variant string) string {
	// type arguments may contain slashes as well
	head, args, generic := strings.Cut(variant, "[")
	if idx := strings.LastIndex(head, "/"); idx >= 0 {
		head = head[idx+1:]
	}

	if generic {
		return head + "[" + args
	}

	return head
}

var (
	StartStep = StepInfo{Index: -1, Variant: "start"}
	EndStep   = StepInfo{Index: -1, Variant: "end"}
)
