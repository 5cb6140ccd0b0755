package consensus

// scanOutputs walks tx's outputs once, calling classify on each. classify
// reports whether the output belongs to the feature being checked (keep) and
// may return an error to reject the transaction outright. Outputs for which
// keep is false and err is nil are treated as permitted companions (etp,
// message, ...) and silently skipped.
//
// This factors the repeated "for each output: if it's mine, accumulate; if
// it's an allowed companion, skip; otherwise reject" shape shared by every
// per-feature checker in this package.
func scanOutputs(tx *Tx, classify func(out *TxOutput, index int) (keep bool, err error)) ([]int, error) {
	var kept []int
	for i := range tx.Outputs {
		keep, err := classify(&tx.Outputs[i], i)
		if err != nil {
			return nil, err
		}
		if keep {
			kept = append(kept, i)
		}
	}
	return kept, nil
}
