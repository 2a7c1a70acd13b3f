// Package model provides the data structures shared by the pipeline package and its
// observers. It describes a single execution (RunInfo), the step being executed
// (StepInfo) and the Hook interface notified while a pipeline runs.
package model
