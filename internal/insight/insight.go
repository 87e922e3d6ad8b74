package insight

// Kind tags what a recommendation is about.
type Kind string

const (
	KindRestock        Kind = "restock"
	KindSlowMover      Kind = "slow_mover_alert"
	KindPriceReduction Kind = "price_reduction"
	KindDegraded       Kind = "service_unavailable"
)

// Recommendation is an ephemeral, human-readable operational suggestion.
// Only its audit summary outlives the request. Payload is opaque structured
// context for the caller, typically the affected product ids.
type Recommendation struct {
	Kind        Kind           `json:"kind"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Action      string         `json:"action"`
	Confidence  float64        `json:"confidence"`
	Payload     map[string]any `json:"payload,omitempty"`
}
