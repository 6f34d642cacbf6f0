package capacity

import "math"

// Metrics is the structural health triple of a network.
//
//	H:    total slack; negative when the network is globally overloaded.
//	HEff: accessibility-weighted slack; always <= H.
//	S:    population standard deviation of per-node utilization.
type Metrics struct {
	H    float64 `json:"h"`
	HEff float64 `json:"h_eff"`
	S    float64 `json:"s"`
}

// ComputeMetrics reduces a built network to its (H, HEff, S) triple.
// Pure function, O(N+E).
//
// HEff weights each positive slack by degree/(size-1), the node's
// degree relative to the maximum possible degree. Non-positive slack
// (overload) is carried at full weight so that HEff <= H holds even
// for globally overloaded networks. A network with no edges has no
// accessible slack: positive contributions drop to zero.
//
// S treats a zero-capacity node as utilization 0 and keeps it in the
// population denominator.
func ComputeMetrics(nw *Network) Metrics {
	if nw == nil || len(nw.Nodes) == 0 {
		return Metrics{}
	}

	var h float64
	for _, n := range nw.Nodes {
		h += n.Slack()
	}

	hEff := effectiveSlack(nw)

	utilizations := make([]float64, 0, len(nw.Nodes))
	var sum float64
	for _, n := range nw.Nodes {
		u := n.Utilization()
		utilizations = append(utilizations, u)
		sum += u
	}
	mean := sum / float64(len(utilizations))
	var variance float64
	for _, u := range utilizations {
		d := u - mean
		variance += d * d
	}
	variance /= float64(len(utilizations))

	return Metrics{H: h, HEff: hEff, S: math.Sqrt(variance)}
}

func effectiveSlack(nw *Network) float64 {
	size := len(nw.Nodes)
	degrees := nw.Degrees()
	hasEdges := len(nw.Edges) > 0

	var hEff float64
	for _, n := range nw.Nodes {
		slack := n.Slack()
		if slack <= 0 {
			// Overload counts fully against effective slack.
			hEff += slack
			continue
		}
		if !hasEdges || size < 2 {
			continue
		}
		accessibility := float64(degrees[n.ID]) / float64(size-1)
		if accessibility > 1 {
			// Parallel edges can push degree past size-1; the weight
			// stays bounded so HEff <= H holds.
			accessibility = 1
		}
		hEff += slack * accessibility
	}
	return hEff
}
