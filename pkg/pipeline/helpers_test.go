package pipeline_test

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/askiada/go-derive/pkg/pipeline"
	"github.com/askiada/go-derive/pkg/pipeline/model"
)

type none struct{}

type addOne struct {
	pipeline.StepBase[int, int, int]
}

func newAddOne(n int) pipeline.Step[int, int, int] {
	return addOne{pipeline.StepBase[int, int, int]{Params: n}}
}

func (a addOne) Transform(_ context.Context, input int) (int, error) {
	return input + a.Params, nil
}

type subtract struct {
	pipeline.StepBase[int, int, int]
}

func newSubtract(n int) pipeline.Step[int, int, int] {
	return subtract{pipeline.StepBase[int, int, int]{Params: n}}
}

func (s subtract) Transform(_ context.Context, input int) (int, error) {
	return input - s.Params, nil
}

type double struct {
	pipeline.StepBase[none, int, int]
}

func newDouble() pipeline.Step[none, int, int] {
	return double{}
}

func (double) Transform(_ context.Context, input int) (int, error) {
	return input * 2, nil
}

type itoa struct {
	pipeline.StepBase[none, int, string]
}

func newItoa() pipeline.Step[none, int, string] {
	return itoa{}
}

func (itoa) Transform(_ context.Context, input int) (string, error) {
	return strconv.Itoa(input), nil
}

// unfinished forgets to provide its transform.
type unfinished struct {
	pipeline.StepBase[none, int, int]
}

func newUnfinished() pipeline.Step[none, int, int] {
	return unfinished{}
}

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (cl *callLog) add(name string) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.calls = append(cl.calls, name)
}

func (cl *callLog) all() []string {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	return append([]string(nil), cl.calls...)
}

// recorder adds one to its input and records its invocation, failing with err
// when set.
type recorder struct {
	pipeline.StepBase[string, int, int]
	log *callLog
	err error
}

func newRecorder(name string, log *callLog, err error) pipeline.Step[string, int, int] {
	return recorder{StepBase: pipeline.StepBase[string, int, int]{Params: name}, log: log, err: err}
}

func (r recorder) Transform(_ context.Context, input int) (int, error) {
	r.log.add(r.Params)
	if r.err != nil {
		return 0, r.err
	}

	return input + 1, nil
}

type hookEvent struct {
	kind  string
	index int
	err   error
}

type recordingHook struct {
	mu     sync.Mutex
	runs   []model.RunInfo
	events []hookEvent
}

func (rh *recordingHook) OnStart(run model.RunInfo) {
	rh.mu.Lock()
	defer rh.mu.Unlock()
	rh.runs = append(rh.runs, run)
	rh.events = append(rh.events, hookEvent{kind: "start", index: -1})
}

func (rh *recordingHook) BeforeStep(_ model.RunInfo, step model.StepInfo) {
	rh.mu.Lock()
	defer rh.mu.Unlock()
	rh.events = append(rh.events, hookEvent{kind: "before", index: step.Index})
}

func (rh *recordingHook) AfterStep(_ model.RunInfo, step model.StepInfo, _ time.Duration, err error) {
	rh.mu.Lock()
	defer rh.mu.Unlock()
	rh.events = append(rh.events, hookEvent{kind: "after", index: step.Index, err: err})
}

func (rh *recordingHook) OnFinish(_ model.RunInfo, _ time.Duration, err error) {
	rh.mu.Lock()
	defer rh.mu.Unlock()
	rh.events = append(rh.events, hookEvent{kind: "finish", index: -1, err: err})
}

func addOneDouble() pipeline.JustPipeline[int, int] {
	return pipeline.Then(pipeline.Then(pipeline.Just[int](), newAddOne(1)), newDouble())
}

type scale struct {
	pipeline.StepBase[float64, int, int]
}

func newScale(f float64) pipeline.Step[float64, int, int] {
	return scale{pipeline.StepBase[float64, int, int]{Params: f}}
}

func (s scale) Transform(_ context.Context, input int) (int, error) {
	return int(float64(input) * s.Params), nil
}

type tagged struct {
	pipeline.StepBase[any, int, int]
}

func newTagged(tag any) pipeline.Step[any, int, int] {
	return tagged{pipeline.StepBase[any, int, int]{Params: tag}}
}

func (tagged) Transform(_ context.Context, input int) (int, error) {
	return input, nil
}
