package forms

// MeasurementOptions is the canonical list of measurement methods offered by
// the marketing request. The keyword scorer suggests from the same list.
var MeasurementOptions = []string{
	"Conversion Rate",
	"Click-Through Rate (CTR)",
	"Lead Generation",
	"Brand Awareness",
	"Engagement Rate",
	"Revenue/Sales",
	"Website Traffic",
	"Social Media Metrics",
	"Email Open/Click Rates",
}

// ChannelOptions lists the preferred channels of a broader campaign.
var ChannelOptions = []string{
	"Email Marketing",
	"Social Media (Organic)",
	"Paid Social Media",
	"Google Ads (Search)",
	"Google Ads (Display)",
	"Content Marketing",
	"SEO",
	"Webinars",
	"Events/Trade Shows",
	"PR/Media Relations",
	"Direct Mail",
	"Influencer Marketing",
	"Partnerships",
	"Retargeting/Remarketing",
	"Video Marketing",
}

const MarketingRequestID = "marketing-request"
