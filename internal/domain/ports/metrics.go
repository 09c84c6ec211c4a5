package ports

import "page-relay/internal/domain/model"

// Metrics records relay outcomes.
type Metrics interface {
	ObserveChange(verb model.FeedVerb, outcome model.ChangeOutcome)
	ObserveDelivery(ok bool)
}
