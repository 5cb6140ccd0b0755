package consensus

import "context"

// resolvePreviousOutput looks up the output referenced by op, trying the
// confirmed chain first and falling back to the mempool, the same
// chain-then-pool order Validate's per-input loop uses. found is false if op resolves in
// neither. This is used by the per-feature checks that must inspect an
// input's previous output before the orchestrator has performed its own
// per-input resolution pass.
func resolvePreviousOutput(ctx context.Context, chain Chain, pool Pool, op OutPoint) (out *TxOutput, found bool, err error) {
	if tx, _, ok, err := chain.FetchTransaction(ctx, op.TxHash); err != nil {
		return nil, false, err
	} else if ok {
		if int(op.Index) >= len(tx.Outputs) {
			return nil, false, nil
		}
		return &tx.Outputs[op.Index], true, nil
	}
	if tx, ok := pool.Find(op.TxHash); ok {
		if int(op.Index) >= len(tx.Outputs) {
			return nil, false, nil
		}
		return &tx.Outputs[op.Index], true, nil
	}
	return nil, false, nil
}
