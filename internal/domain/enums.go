package domain

type Stage string

const (
	StageInit             Stage = "INIT"
	StageBudgeting        Stage = "BUDGETING"
	StageChannelSelection Stage = "CHANNEL_SELECTION"
	StageRefinement       Stage = "REFINEMENT"
	StageOptimization     Stage = "OPTIMIZATION"
	StageFinished         Stage = "FINISHED"
)

type Strategy string

const (
	StrategyBalanced  Strategy = "BALANCED"
	StrategyDigital   Strategy = "DIGITAL"
	StrategyAwareness Strategy = "AWARENESS"
)

type GroupingMode string

const (
	GroupingDetailed       GroupingMode = "DETAILED"
	GroupingChannelSummary GroupingMode = "CHANNEL_SUMMARY"
)

type CostMethod string

const (
	CostCPM  CostMethod = "CPM"
	CostCPC  CostMethod = "CPC"
	CostSpot CostMethod = "Spot"
	CostFlat CostMethod = "Flat"
)

type PlacementStatus string

const (
	PlacementActive PlacementStatus = "ACTIVE"
	PlacementPaused PlacementStatus = "PAUSED"
	PlacementDraft  PlacementStatus = "DRAFT"
)

type Channel string

const (
	ChannelSearch         Channel = "Search"
	ChannelSocial         Channel = "Social"
	ChannelDisplay        Channel = "Display"
	ChannelTV             Channel = "TV"
	ChannelRadio          Channel = "Radio"
	ChannelStreamingAudio Channel = "Streaming Audio"
	ChannelPodcast        Channel = "Podcast"
	ChannelPlaceBased     Channel = "Place-based Audio"
	ChannelOOH            Channel = "OOH"
	ChannelPrint          Channel = "Print"
)

// ValidChannels is the canonical channel taxonomy.
var ValidChannels = map[Channel]bool{
	ChannelSearch: true, ChannelSocial: true, ChannelDisplay: true,
	ChannelTV: true, ChannelRadio: true, ChannelStreamingAudio: true,
	ChannelPodcast: true, ChannelPlaceBased: true, ChannelOOH: true,
	ChannelPrint: true,
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

type ActionType string

const (
	ActionExportPDF      ActionType = "EXPORT_PDF"
	ActionExportPPT      ActionType = "EXPORT_PPT"
	ActionLayoutLeft     ActionType = "LAYOUT_LEFT"
	ActionLayoutRight    ActionType = "LAYOUT_RIGHT"
	ActionLayoutBottom   ActionType = "LAYOUT_BOTTOM"
	ActionCreateCampaign ActionType = "CREATE_CAMPAIGN"
	ActionCreateFlight   ActionType = "CREATE_FLIGHT"
)
