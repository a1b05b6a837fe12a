package entities

// PipelineSummary counts quotes per known status.
type PipelineSummary map[QuoteStatus]int

// SummarizePipeline buckets quotes by status. Every known status is present
// with a zero default; statuses outside the known set are dropped.
func SummarizePipeline(quotes []Quote) PipelineSummary {
	summary := make(PipelineSummary, len(KnownQuoteStatuses))
	for _, s := range KnownQuoteStatuses {
		summary[s] = 0
	}
	for _, q := range quotes {
		if !q.Status.IsKnown() {
			continue
		}
		summary[q.Status]++
	}
	return summary
}

// Total returns the number of quotes counted in the summary.
func (s PipelineSummary) Total() int {
	n := 0
	for _, c := range s {
		n += c
	}
	return n
}
