package reference

import (
	"sort"
	"strings"

	"github.com/planvox/planvox/internal/domain"
)

// VendorInfo maps a canonical vendor token to its channel and display name.
type VendorInfo struct {
	Channel domain.Channel
	Display string
}

// vendors is the static vendor lookup. Keys are lowercase tokens as an
// operator would type them.
var vendors = map[string]VendorInfo{
	// Social
	"facebook":  {domain.ChannelSocial, "Facebook"},
	"instagram": {domain.ChannelSocial, "Instagram"},
	"meta":      {domain.ChannelSocial, "Meta"},
	"tiktok":    {domain.ChannelSocial, "TikTok"},
	"snapchat":  {domain.ChannelSocial, "Snapchat"},
	"linkedin":  {domain.ChannelSocial, "LinkedIn"},
	"pinterest": {domain.ChannelSocial, "Pinterest"},
	"twitter":   {domain.ChannelSocial, "X"},
	"x":         {domain.ChannelSocial, "X"},
	"reddit":    {domain.ChannelSocial, "Reddit"},

	// Search
	"google":        {domain.ChannelSearch, "Google"},
	"google ads":    {domain.ChannelSearch, "Google Ads"},
	"bing":          {domain.ChannelSearch, "Bing"},
	"microsoft ads": {domain.ChannelSearch, "Microsoft Ads"},
	"yahoo search":  {domain.ChannelSearch, "Yahoo Search"},

	// Display / programmatic
	"dv360":          {domain.ChannelDisplay, "DV360"},
	"the trade desk": {domain.ChannelDisplay, "The Trade Desk"},
	"trade desk":     {domain.ChannelDisplay, "The Trade Desk"},
	"amazon dsp":     {domain.ChannelDisplay, "Amazon DSP"},
	"criteo":         {domain.ChannelDisplay, "Criteo"},
	"taboola":        {domain.ChannelDisplay, "Taboola"},
	"outbrain":       {domain.ChannelDisplay, "Outbrain"},
	"programmatic":   {domain.ChannelDisplay, "Programmatic Display"},

	// Streaming audio
	"spotify":      {domain.ChannelStreamingAudio, "Spotify"},
	"pandora":      {domain.ChannelStreamingAudio, "Pandora"},
	"iheart":       {domain.ChannelStreamingAudio, "iHeart"},
	"iheartradio":  {domain.ChannelStreamingAudio, "iHeartRadio"},
	"soundcloud":   {domain.ChannelStreamingAudio, "SoundCloud"},
	"amazon music": {domain.ChannelStreamingAudio, "Amazon Music"},

	// Podcast
	"acast":     {domain.ChannelPodcast, "Acast"},
	"megaphone": {domain.ChannelPodcast, "Megaphone"},
	"wondery":   {domain.ChannelPodcast, "Wondery"},
	"podcast":   {domain.ChannelPodcast, "Podcast Network"},
	"podcasts":  {domain.ChannelPodcast, "Podcast Network"},

	// Place-based audio
	"vibenomics":   {domain.ChannelPlaceBased, "Vibenomics"},
	"in-store":     {domain.ChannelPlaceBased, "In-Store Audio"},
	"instore":      {domain.ChannelPlaceBased, "In-Store Audio"},
	"retail audio": {domain.ChannelPlaceBased, "Retail Audio"},

	// Radio
	"radio":        {domain.ChannelRadio, "Local Radio"},
	"am/fm":        {domain.ChannelRadio, "AM/FM Radio"},
	"audacy":       {domain.ChannelRadio, "Audacy"},
	"cumulus":      {domain.ChannelRadio, "Cumulus"},
	"westwood one": {domain.ChannelRadio, "Westwood One"},

	// Video platforms buy like TV in the taxonomy.
	"youtube":   {domain.ChannelTV, "YouTube"},
	"hulu":      {domain.ChannelTV, "Hulu"},
	"roku":      {domain.ChannelTV, "Roku"},
	"tubi":      {domain.ChannelTV, "Tubi"},
	"peacock":   {domain.ChannelTV, "Peacock"},
	"netflix":   {domain.ChannelTV, "Netflix"},
	"paramount": {domain.ChannelTV, "Paramount+"},
}

// tvNetworks is checked by substring containment so a trailing program name
// survives ("ESPN SportsCenter" resolves to vendor ESPN, program
// SportsCenter).
var tvNetworks = []string{
	"espn", "abc", "nbc", "cbs", "fox", "cnn", "msnbc", "hgtv", "amc",
	"bravo", "tnt", "tbs", "usa network", "discovery", "history",
	"mtv", "comedy central", "food network", "fx", "cw",
}

// denied maps unsupported vendor tokens to the channel an operator should
// use instead.
var denied = map[string]domain.Channel{
	"print":       domain.ChannelDisplay,
	"newspaper":   domain.ChannelDisplay,
	"newspapers":  domain.ChannelDisplay,
	"magazine":    domain.ChannelDisplay,
	"magazines":   domain.ChannelDisplay,
	"email":       domain.ChannelSocial,
	"direct mail": domain.ChannelSocial,
	"billboard":   domain.ChannelOOH,
	"billboards":  domain.ChannelOOH,
	"flyer":       domain.ChannelDisplay,
	"flyers":      domain.ChannelDisplay,
	"classifieds": domain.ChannelDisplay,
}

// Classification is the outcome of resolving a free-text vendor token.
type Classification struct {
	Channel domain.Channel
	Vendor  string
	AdUnit  string
}

// Denied reports whether the token names an unsupported buy, returning the
// suggested alternative channel.
func Denied(token string) (domain.Channel, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	for k, alt := range denied {
		if strings.Contains(t, k) {
			return alt, true
		}
	}
	return "", false
}

// Classify resolves a free-text vendor token to a channel and display name.
// Resolution order: exact vendor table lookup (longest match first for
// multi-word tokens), TV network substring match with a trailing program
// name, then an unknown-vendor default of TV with the token title-cased.
func Classify(token string) Classification {
	t := strings.ToLower(strings.TrimSpace(token))

	if info, ok := vendors[t]; ok {
		return Classification{Channel: info.Channel, Vendor: info.Display}
	}

	// A known vendor followed by extra words keeps the remainder as the
	// ad-unit label ("spotify audio everywhere" → Spotify, "Audio Everywhere").
	// Longest keys first so "google ads" wins over "google".
	for _, key := range vendorKeysByLength() {
		if strings.HasPrefix(t, key+" ") {
			info := vendors[key]
			rest := strings.TrimSpace(token[len(key):])
			return Classification{Channel: info.Channel, Vendor: info.Display, AdUnit: titleCase(rest)}
		}
	}

	for _, network := range tvNetworks {
		if t == network {
			return Classification{Channel: domain.ChannelTV, Vendor: networkDisplay(network)}
		}
		if strings.HasPrefix(t, network+" ") {
			rest := strings.TrimSpace(token[len(network):])
			return Classification{
				Channel: domain.ChannelTV,
				Vendor:  networkDisplay(network),
				AdUnit:  titleCase(rest),
			}
		}
	}

	return Classification{Channel: domain.ChannelTV, Vendor: titleCase(token)}
}

var sortedVendorKeys []string

func vendorKeysByLength() []string {
	if sortedVendorKeys == nil {
		for k := range vendors {
			sortedVendorKeys = append(sortedVendorKeys, k)
		}
		sort.Slice(sortedVendorKeys, func(i, j int) bool {
			if len(sortedVendorKeys[i]) != len(sortedVendorKeys[j]) {
				return len(sortedVendorKeys[i]) > len(sortedVendorKeys[j])
			}
			return sortedVendorKeys[i] < sortedVendorKeys[j]
		})
	}
	return sortedVendorKeys
}

// networkDisplay renders a network token for display: short names are
// uppercased call letters, multi-word names are title-cased.
func networkDisplay(network string) string {
	if len(network) <= 5 && !strings.Contains(network, " ") {
		return strings.ToUpper(network)
	}
	return titleCase(network)
}

func titleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
