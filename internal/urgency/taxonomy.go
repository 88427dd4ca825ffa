package urgency

// Tier pairs an urgency level with its keyword list. Tiers are scanned
// highest first, keywords in list order, so the scan order is a fixed
// invariant rather than a property of map iteration.
type Tier struct {
	Level    int
	Keywords []string
}

// Taxonomy is the ordered tier table. Single words or short phrases only,
// no regex metacharacters, all lowercase.
var Taxonomy = []Tier{
	{
		Level: 5,
		Keywords: []string{
			"sparking", "electrocution", "fire", "explosion", "emergency",
			"critical", "danger", "dangerous", "hazard", "accident", "injury",
			"exposed", "electrocuted", "burst", "blackout", "collapsed",
			"overflow", "sewage",
		},
	},
	{
		Level: 4,
		Keywords: []string{
			"leaking", "leak", "flooding", "flood", "broken", "fallen",
			"damaged", "severe", "heavy", "major",
			"hazardous", "risk", "disconnected", "congestion", "jam",
			"blocked", "clogged", "inoperative",
		},
	},
	{
		Level: 3,
		Keywords: []string{
			"pothole", "crack", "pit", "hole", "uneven",
			"dirty", "dust", "debris", "garbage", "trash", "waste", "litter",
			"repair", "maintenance", "issue",
		},
	},
	{
		Level: 2,
		Keywords: []string{
			"small", "minor", "little", "slight", "routine", "regular",
		},
	},
	{
		Level: 1,
		Keywords: []string{
			"complaint", "feedback", "suggestion", "general",
		},
	},
}

var labels = map[int]string{
	5: "Critical",
	4: "High",
	3: "Medium",
	2: "Low",
	1: "Very Low",
}

// Label returns the fixed label for a 1-5 urgency level.
func Label(level int) string {
	return labels[level]
}
