package ledger

import "sort"

// ClientTotal is one client's outstanding subtotal.
type ClientTotal struct {
	Client      string `json:"client"`
	AmountCents int64  `json:"amount_cents"`
}

// Aggregate groups the active set by client and sums amounts, returning the
// per-client subtotals in client order plus the grand total. Pure function;
// an empty set yields no groups and a grand total of 0.
func Aggregate(active []DebtRecord) ([]ClientTotal, int64) {
	byClient := make(map[string]int64, len(active))
	var grand int64
	for _, rec := range active {
		byClient[rec.Client] += rec.AmountCents
		grand += rec.AmountCents
	}

	totals := make([]ClientTotal, 0, len(byClient))
	for client, cents := range byClient {
		totals = append(totals, ClientTotal{Client: client, AmountCents: cents})
	}
	sort.Slice(totals, func(i, j int) bool {
		a, b := totals[i].Client, totals[j].Client
		if (a == "") != (b == "") {
			return a != ""
		}
		return a < b
	})
	return totals, grand
}
