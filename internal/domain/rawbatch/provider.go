package rawbatch

import "context"

// Provider is the acquisition collaborator boundary. Implementations own
// their retry/backoff policy and must return fully materialized batches in a
// stable discovery order. A period with no data is simply absent from the
// result; only structural failures (unreadable storage, dead endpoint)
// surface as errors.
type Provider interface {
	ListBatches(ctx context.Context, kind Kind, periods []int) ([]Batch, error)
}
