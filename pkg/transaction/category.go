package transaction

// UpdateCategory returns a copy of txs in which every transaction whose ID is
// in ids carries category. Unknown ids are ignored and txs is not modified.
func UpdateCategory(txs []Transaction, ids []string, category string) []Transaction {
	targets := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		targets[id] = struct{}{}
	}

	out := make([]Transaction, len(txs))
	copy(out, txs)
	for i := range out {
		if _, ok := targets[out[i].ID]; ok {
			out[i].Category = category
		}
	}
	return out
}
