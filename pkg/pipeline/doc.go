// Package pipeline composes typed, parameterised steps into derivation chains.
//
// A step is a pure transformation from an input to an output, configured by
// comparable parameters. Steps are chained into a JustPipeline, an immutable
// definition that can be compared, fingerprinted and hashed, which makes it usable
// as a cache key. Binding a definition to an Executor gives a Pipeline that can run
// all of its steps or any range of them:
//
//	def := pipeline.Then(pipeline.Then(pipeline.Just[int](), addOne), double)
//	pipe := pipeline.New(def)
//	out, err := pipe.Execute(ctx, 5)               // every step
//	part, err := pipe.ExecuteRange(ctx, 5, 0, -1)  // every step but the last one
//
// Steps run sequentially, the output of one being the input of the next. The first
// failing step stops the execution and its error is returned to the caller as is.
//
// Steps reading from the analytics model are DataCollectors, see package collector.
package pipeline
