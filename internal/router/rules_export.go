package router

import (
	"fmt"
	"regexp"

	"github.com/planvox/planvox/internal/domain"
)

var (
	slidesPattern = regexp.MustCompile(`(?i)\bslides?\b|\bppt\b|powerpoint|\bdeck\b|presentation|slideshow`)
	docPattern    = regexp.MustCompile(`(?i)\bpdf\b|\bdocument\b|\bexport\b|\bdownload\b|\breport\b`)
)

func exportSlidesRule() rule {
	return rule{
		name: "export-to-slideshow",
		match: func(req *Request) bool {
			return slidesPattern.MatchString(req.lower)
		},
		run: func(req *Request) Response {
			return exportResponse(req.Plan, domain.ActionExportPPT, "slide deck")
		},
	}
}

func exportDocRule() rule {
	return rule{
		name: "export-to-document",
		match: func(req *Request) bool {
			return docPattern.MatchString(req.lower)
		},
		run: func(req *Request) Response {
			return exportResponse(req.Plan, domain.ActionExportPDF, "PDF")
		},
	}
}

func exportResponse(m *domain.MediaPlan, action domain.ActionType, label string) Response {
	if m == nil {
		return Response{
			Text:             "There's no plan to export yet. Tell me a budget and I'll build one.",
			SuggestedReplies: []string{"Create a plan for Acme ($250k)"},
		}
	}
	return Response{
		Text: fmt.Sprintf("Exporting the plan for **%s** as a %s — %s across %s of spend.",
			m.Campaign.Client, label,
			count(len(m.Campaign.Placements), "placement"), money(m.TotalSpend)),
		Action:           &domain.Action{Type: action},
		SuggestedReplies: []string{"Switch to a channel summary first"},
	}
}
