package graph

// DefaultTransitionBoost is the weight multiplier added per recorded transition.
const DefaultTransitionBoost = 0.5

// WeightModel turns a neighbour hit into an edge weight. Implementations must
// return non-negative values and be safe for concurrent use.
type WeightModel interface {
	Weight(distance float32, popularity float64, transitions int) float64
}

// CompositeWeight multiplies semantic similarity, target popularity and a
// transition boost.
type CompositeWeight struct {
	// TransitionBoost is added to the multiplier for each recorded transition.
	TransitionBoost float64
}

// DefaultWeightModel is the composite model with a 0.5 boost per transition.
var DefaultWeightModel WeightModel = CompositeWeight{TransitionBoost: DefaultTransitionBoost}

// Weight implements WeightModel.
func (c CompositeWeight) Weight(distance float32, popularity float64, transitions int) float64 {
	similarity := max(0, 1-float64(distance))
	boost := 1.0
	if transitions > 0 {
		boost += c.TransitionBoost * float64(transitions)
	}
	return similarity * max(0, popularity) * max(0, boost)
}
