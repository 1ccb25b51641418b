package burnout

// Recommendation list bounds.
const (
	minRecommendations = 3
	maxRecommendations = 5
)

// factorThreshold is the impact above which a factor earns its own
// targeted recommendation.
const factorThreshold = 0.6

// generalRecommendations are gated on the overall risk score.
var generalRecommendations = []struct {
	minScore int
	text     string
}{
	{70, "Risk indicators are high across the board. Consider taking time off and discussing workload with your team lead."},
	{50, "Several sustainability signals are elevated. Review your current commitments and delegate where possible."},
}

// factorRecommendations map each factor to its targeted advice, in the
// order they are appended when a factor exceeds the threshold.
var factorRecommendations = []struct {
	factor string
	text   string
}{
	{FactorWorkHours, "A large share of commits lands late at night. Try to shift deep work into regular hours and protect your evenings."},
	{FactorCodeQuality, "Commit messages are getting terse. Slowing down to write clear messages often surfaces rushed or fatigued work."},
	{FactorCollaboration, "Review activity is low relative to authored work. Pair up or schedule review time to stay connected with the team."},
	{FactorWorkload, "Commit volume swings heavily between days. Smoothing the workload reduces crunch-and-crash cycles."},
	{FactorTimeToResolve, "Pull requests sit unreviewed for long stretches. Raising this with the team can remove a persistent frustration source."},
	{FactorWeekendWork, "Weekend commits are frequent. Guard at least one fully offline day per week."},
}

// fallbackRecommendations pad the list when too few rules fire.
var fallbackRecommendations = []string{
	"Keep a consistent daily routine with clear start and stop times.",
	"Take regular breaks during long coding sessions.",
	"Check in with your team about workload balance during planning.",
}

// Recommend builds the ranked recommendation list for an assessment:
// general advice gated on the risk score first, then one targeted entry
// per factor exceeding the threshold, padded with generic fallbacks to at
// least 3 and truncated to at most 5.
func Recommend(score int, f Factors) []string {
	var recs []string

	for _, g := range generalRecommendations {
		if score > g.minScore {
			recs = append(recs, g.text)
		}
	}

	impacts := map[string]float64{
		FactorWorkHours:     f.WorkHoursPattern,
		FactorCodeQuality:   f.CodeQualityTrend,
		FactorCollaboration: f.CollaborationLevel,
		FactorWorkload:      f.WorkloadDistribution,
		FactorTimeToResolve: f.TimeToResolution,
		FactorWeekendWork:   f.WeekendWorkFrequency,
	}

	for _, fr := range factorRecommendations {
		if impacts[fr.factor] > factorThreshold {
			recs = append(recs, fr.text)
		}
	}

	for _, fb := range fallbackRecommendations {
		if len(recs) >= minRecommendations {
			break
		}
		recs = append(recs, fb)
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
