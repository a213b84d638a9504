// Package reference holds the static lookup data the interpreter matches
// against: the channel taxonomy with cost conventions and rate ranges, the
// vendor name tables, and the unsupported-channel denylist.
package reference

import "github.com/planvox/planvox/internal/domain"

// ChannelProfile describes how a channel is bought: its cost method, the
// plausible rate range, and the audience model used for forecasts.
type ChannelProfile struct {
	Channel    domain.Channel
	CostMethod domain.CostMethod

	// MinRate and MaxRate bound the rate in the cost method's units
	// (CPM dollars per thousand, CPC dollars per click, Spot/Flat
	// dollars per insertion).
	MinRate float64
	MaxRate float64

	// ImpressionsPerUnit converts quantity to forecast impressions for
	// non-CPM methods (per click for CPC, per insertion for Spot/Flat).
	// CPM quantity is already an impression count.
	ImpressionsPerUnit float64

	// BenchmarkROAS is the return assumed for placements that have no
	// observed performance yet.
	BenchmarkROAS float64
}

var profiles = map[domain.Channel]ChannelProfile{
	domain.ChannelSearch: {
		Channel: domain.ChannelSearch, CostMethod: domain.CostCPC,
		MinRate: 1.50, MaxRate: 4.50, ImpressionsPerUnit: 180, BenchmarkROAS: 3.2,
	},
	domain.ChannelSocial: {
		Channel: domain.ChannelSocial, CostMethod: domain.CostCPM,
		MinRate: 6.00, MaxRate: 14.00, ImpressionsPerUnit: 1, BenchmarkROAS: 2.4,
	},
	domain.ChannelDisplay: {
		Channel: domain.ChannelDisplay, CostMethod: domain.CostCPM,
		MinRate: 2.50, MaxRate: 8.00, ImpressionsPerUnit: 1, BenchmarkROAS: 1.6,
	},
	domain.ChannelTV: {
		Channel: domain.ChannelTV, CostMethod: domain.CostSpot,
		MinRate: 1500, MaxRate: 12000, ImpressionsPerUnit: 85000, BenchmarkROAS: 1.8,
	},
	domain.ChannelRadio: {
		Channel: domain.ChannelRadio, CostMethod: domain.CostSpot,
		MinRate: 150, MaxRate: 900, ImpressionsPerUnit: 12000, BenchmarkROAS: 1.9,
	},
	domain.ChannelStreamingAudio: {
		Channel: domain.ChannelStreamingAudio, CostMethod: domain.CostCPM,
		MinRate: 10.00, MaxRate: 22.00, ImpressionsPerUnit: 1, BenchmarkROAS: 2.1,
	},
	domain.ChannelPodcast: {
		Channel: domain.ChannelPodcast, CostMethod: domain.CostCPM,
		MinRate: 18.00, MaxRate: 35.00, ImpressionsPerUnit: 1, BenchmarkROAS: 2.6,
	},
	domain.ChannelPlaceBased: {
		Channel: domain.ChannelPlaceBased, CostMethod: domain.CostFlat,
		MinRate: 2500, MaxRate: 9000, ImpressionsPerUnit: 45000, BenchmarkROAS: 1.4,
	},
	domain.ChannelOOH: {
		Channel: domain.ChannelOOH, CostMethod: domain.CostFlat,
		MinRate: 3000, MaxRate: 25000, ImpressionsPerUnit: 120000, BenchmarkROAS: 1.2,
	},
	domain.ChannelPrint: {
		Channel: domain.ChannelPrint, CostMethod: domain.CostFlat,
		MinRate: 1200, MaxRate: 15000, ImpressionsPerUnit: 30000, BenchmarkROAS: 0.9,
	},
}

// ProfileFor returns the buying profile for a channel. Unknown channels fall
// back to the TV profile, matching the classifier's unknown-vendor default.
func ProfileFor(ch domain.Channel) ChannelProfile {
	if p, ok := profiles[ch]; ok {
		return p
	}
	return profiles[domain.ChannelTV]
}

// MidRate is the midpoint of the channel's rate range, used when no random
// source is available to pick a rate.
func MidRate(ch domain.Channel) float64 {
	p := ProfileFor(ch)
	return (p.MinRate + p.MaxRate) / 2
}

// DefaultVendor is the vendor used when a placement is created from a
// channel alone, with no vendor named.
func DefaultVendor(ch domain.Channel) string {
	switch ch {
	case domain.ChannelSearch:
		return "Google"
	case domain.ChannelSocial:
		return "Meta"
	case domain.ChannelDisplay:
		return "Programmatic Display"
	case domain.ChannelTV:
		return "Broadcast TV"
	case domain.ChannelRadio:
		return "Local Radio"
	case domain.ChannelStreamingAudio:
		return "Spotify"
	case domain.ChannelPodcast:
		return "Podcast Network"
	case domain.ChannelPlaceBased:
		return "In-Store Audio"
	case domain.ChannelOOH:
		return "Outdoor Network"
	case domain.ChannelPrint:
		return "Regional Print"
	default:
		return string(ch)
	}
}
