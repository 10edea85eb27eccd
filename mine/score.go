package mine

// objective is the boosting gain of a stump over weighted labeled graphs:
//
//	gain(t) = max over w in {+1,-1} of sum_i d_i y_i w (2[i in S(t)] - 1)
//	        = |2 sum_{i in S} d_i y_i - D|    where D = sum_i d_i y_i
//
// Every supergraph t' of t has S(t') a subset of S(t), which bounds its gain
// by max(2 sum_{S, y=+1} d_i - D, 2 sum_{S, y=-1} d_i + D).
type objective struct {
	values  []int
	weights []float64
	D       float64
	W       float64
}

func newObjective(values []int, weights []float64) *objective {
	o := &objective{
		values:  values,
		weights: weights,
	}
	for i, y := range values {
		o.D += weights[i] * float64(y)
		o.W += weights[i]
	}
	return o
}

type score struct {
	Gain            float64
	Sign            int
	Bound           float64
	WeightedSupport float64
}

// score evaluates the stump whose pattern occurs exactly in the labeled
// graphs gids.
func (o *objective) score(gids []int) score {
	var pos, neg float64
	for _, gid := range gids {
		if o.values[gid] > 0 {
			pos += o.weights[gid]
		} else {
			neg += o.weights[gid]
		}
	}
	raw := 2*(pos-neg) - o.D
	s := score{
		Gain:            raw,
		Sign:            1,
		Bound:           max(2*pos-o.D, 2*neg+o.D),
		WeightedSupport: pos + neg,
	}
	if raw < 0 {
		s.Gain = -raw
		s.Sign = -1
	}
	return s
}

// priority quantizes a bound for the search queue. Bounds never exceed 2W.
func (o *objective) priority(bound float64) int {
	if o.W <= 0 {
		return 0
	}
	return int(100000000 * bound / o.W)
}
