package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Batch runs independent executions of pipe, one per input, with at most limit of
// them in flight. A limit lower than 1 means one execution per input at once.
// Outputs keep the order of inputs. The first error is returned and executions not
// started yet are skipped.
func Batch[In, Out any](ctx context.Context, pipe Pipeline[In, Out], inputs []In, limit int) ([]Out, error) {
	outputs := make([]Out, len(inputs))

	errGrp, dCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		errGrp.SetLimit(limit)
	}

	for idx, input := range inputs {
		localIdx, localInput := idx, input

		errGrp.Go(func() error {
			// errgroup keeps the first error, this one only matters when ctx is done
			if err := dCtx.Err(); err != nil {
				return err
			}

			out, err := pipe.Execute(dCtx, localInput)
			if err != nil {
				return err
			}

			outputs[localIdx] = out

			return nil
		})
	}

	err := errGrp.Wait()
	if err != nil {
		return nil, err
	}

	return outputs, nil
}
