package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/planvox/planvox/internal/domain"
	"github.com/planvox/planvox/internal/parse"
	"github.com/planvox/planvox/internal/plan"
	"github.com/planvox/planvox/internal/reference"
)

var addVerbPattern = regexp.MustCompile(`(?i)\b(add|include|insert|put in)\b`)

// channelKeywords resolve an explicit channel mention in an add command to
// the taxonomy. Checked before freeform vendor classification.
var channelKeywords = []struct {
	keyword string
	channel domain.Channel
}{
	{"streaming audio", domain.ChannelStreamingAudio},
	{"place-based audio", domain.ChannelPlaceBased},
	{"place based audio", domain.ChannelPlaceBased},
	{"out of home", domain.ChannelOOH},
	{"out-of-home", domain.ChannelOOH},
	{"search", domain.ChannelSearch},
	{"social", domain.ChannelSocial},
	{"display", domain.ChannelDisplay},
	{"podcast", domain.ChannelPodcast},
	{"radio", domain.ChannelRadio},
	{"ooh", domain.ChannelOOH},
	{"tv", domain.ChannelTV},
	{"television", domain.ChannelTV},
}

func addByChannelRule() rule {
	return rule{
		name:    "add-placement-by-channel",
		mutates: true,
		match: func(req *Request) bool {
			if !addVerbPattern.MatchString(req.lower) {
				return false
			}
			if _, denied := reference.Denied(req.lower); denied {
				return false // let the freeform rule produce the rejection
			}
			_, ok := channelFromText(req.lower)
			return ok
		},
		run: func(req *Request) Response {
			ch, _ := channelFromText(req.lower)
			profile := reference.ProfileFor(ch)
			allocation := plan.AddAllocation(req.Plan.Campaign.Budget)
			item := plan.NewLineItem(profile, reference.DefaultVendor(ch), "", allocation, reference.MidRate(ch))
			updated := plan.Add(req.Plan, item)
			return addedResponse(updated, item)
		},
	}
}

func addByNameRule() rule {
	return rule{
		name:    "add-placement-by-name",
		mutates: true,
		match: func(req *Request) bool {
			_, ok := parse.VendorToken(req.Text)
			return ok
		},
		run: func(req *Request) Response {
			token, _ := parse.VendorToken(req.Text)

			if alt, denied := reference.Denied(token); denied {
				return Response{
					Text: fmt.Sprintf(
						"I can't plan **%s** buys — that channel isn't supported here. A **%s** placement would reach a similar audience; want me to add one instead?",
						strings.TrimSpace(token), alt),
					SuggestedReplies: []string{fmt.Sprintf("Add a %s placement", strings.ToLower(string(alt)))},
				}
			}

			cls := reference.Classify(token)
			profile := reference.ProfileFor(cls.Channel)
			allocation := plan.AddAllocation(req.Plan.Campaign.Budget)
			item := plan.NewLineItem(profile, cls.Vendor, cls.AdUnit, allocation, reference.MidRate(cls.Channel))
			updated := plan.Add(req.Plan, item)
			return addedResponse(updated, item)
		},
	}
}

func addedResponse(updated *domain.MediaPlan, item domain.Placement) Response {
	return Response{
		Text: fmt.Sprintf("Added **%s** on %s at %s. The plan now has %s totaling %s.",
			item.Label(), item.Channel, money(item.TotalCost),
			count(len(updated.Campaign.Placements), "placement"), money(updated.TotalSpend)),
		Plan: updated,
		SuggestedReplies: []string{
			"Show me a channel summary",
			"Optimize the plan",
		},
	}
}

// channelFromText finds an explicit channel keyword in the text.
func channelFromText(lower string) (domain.Channel, bool) {
	for _, ck := range channelKeywords {
		if strings.Contains(lower, ck.keyword) {
			return ck.channel, true
		}
	}
	return "", false
}
