package services

// TemplateDimension is one axis definition inside a named template.
type TemplateDimension struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	NegativeLabel string `json:"negative_label"`
	PositiveLabel string `json:"positive_label"`
	Position      int    `json:"position"`
}

const defaultTemplateName = "general"

// dimensionTemplates is read-only lookup data; unknown template names fall
// back to "general".
var dimensionTemplates = map[string][]TemplateDimension{
	"climate_policy": {
		{
			Name:          "economic_impact",
			Description:   "Economic costs and opportunities of the proposed policy",
			NegativeLabel: "High cost, negative economic impact",
			PositiveLabel: "Economic opportunity, positive ROI",
			Position:      0,
		},
		{
			Name:          "environmental_urgency",
			Description:   "Urgency of addressing environmental concerns",
			NegativeLabel: "Not urgent, can wait",
			PositiveLabel: "Critical, immediate action needed",
			Position:      1,
		},
		{
			Name:          "technological_feasibility",
			Description:   "Technical feasibility and readiness of solutions",
			NegativeLabel: "Not feasible with current technology",
			PositiveLabel: "Technologically achievable now",
			Position:      2,
		},
		{
			Name:          "social_equity",
			Description:   "Fair distribution of costs and benefits across society",
			NegativeLabel: "Unfair burden on certain groups",
			PositiveLabel: "Fair and equitable distribution",
			Position:      3,
		},
		{
			Name:          "international_cooperation",
			Description:   "Level of international coordination required",
			NegativeLabel: "Unilateral, national action",
			PositiveLabel: "Multilateral, global coordination",
			Position:      4,
		},
	},
	"public_health": {
		{
			Name:          "public_safety",
			Description:   "Impact on public health and safety",
			NegativeLabel: "Minimal safety benefit",
			PositiveLabel: "Critical for public safety",
			Position:      0,
		},
		{
			Name:          "individual_freedom",
			Description:   "Impact on personal freedoms and choices",
			NegativeLabel: "Restricts individual freedom",
			PositiveLabel: "Preserves personal autonomy",
			Position:      1,
		},
		{
			Name:          "healthcare_access",
			Description:   "Accessibility and equity of healthcare services",
			NegativeLabel: "Limited access, inequitable",
			PositiveLabel: "Universal, equitable access",
			Position:      2,
		},
		{
			Name:          "cost_effectiveness",
			Description:   "Cost-benefit ratio of health interventions",
			NegativeLabel: "High cost, low benefit",
			PositiveLabel: "Cost-effective, high ROI",
			Position:      3,
		},
	},
	"urban_development": {
		{
			Name:          "community_impact",
			Description:   "Effect on existing community and residents",
			NegativeLabel: "Disrupts community, displacement",
			PositiveLabel: "Strengthens community cohesion",
			Position:      0,
		},
		{
			Name:          "environmental_sustainability",
			Description:   "Environmental impact and sustainability",
			NegativeLabel: "Environmentally harmful",
			PositiveLabel: "Sustainable, eco-friendly",
			Position:      1,
		},
		{
			Name:          "economic_development",
			Description:   "Economic growth and job creation",
			NegativeLabel: "Minimal economic benefit",
			PositiveLabel: "Strong economic growth",
			Position:      2,
		},
		{
			Name:          "infrastructure_quality",
			Description:   "Quality of infrastructure and services",
			NegativeLabel: "Poor infrastructure, inadequate services",
			PositiveLabel: "High-quality, modern infrastructure",
			Position:      3,
		},
	},
	defaultTemplateName: {
		{
			Name:          "feasibility",
			Description:   "Practical feasibility of implementation",
			NegativeLabel: "Not feasible, impractical",
			PositiveLabel: "Highly feasible, practical",
			Position:      0,
		},
		{
			Name:          "impact",
			Description:   "Expected positive impact and effectiveness",
			NegativeLabel: "Low impact, ineffective",
			PositiveLabel: "High impact, very effective",
			Position:      1,
		},
		{
			Name:          "fairness",
			Description:   "Fairness and equity of the proposal",
			NegativeLabel: "Unfair, inequitable",
			PositiveLabel: "Fair and equitable",
			Position:      2,
		},
		{
			Name:          "risk",
			Description:   "Risk level and potential downsides",
			NegativeLabel: "High risk, many downsides",
			PositiveLabel: "Low risk, minimal downsides",
			Position:      3,
		},
	},
}
