package scoring

// Dimensions holds the six independent headline scores, each on 0..10 and
// rounded to two decimals.
type Dimensions struct {
	Attention         float64 `json:"attention"`
	InvestorSentiment float64 `json:"investor_sentiment"`
	GeneralSentiment  float64 `json:"general_sentiment"`
	BiasIntensity     float64 `json:"bias_intensity"`
	Novelty           float64 `json:"novelty"`
	VolShock          float64 `json:"vol_shock"`
}
