package record

// Record is implemented by Product and Keyword.
type Record interface {
	RecordKey() string
	Values() []string
}

// Keys returns the key of each record, in order.
func Keys[T Record](records []T) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.RecordKey()
	}
	return out
}
