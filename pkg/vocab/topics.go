package vocab

import "strings"

// Topic is one label of the fixed IELTS topic taxonomy.
type Topic string

const (
	TopicEducation           Topic = "Education"
	TopicTechnology          Topic = "Technology"
	TopicEnvironment         Topic = "Environment"
	TopicHealth              Topic = "Health"
	TopicWorkCareer          Topic = "Work & Career"
	TopicSociety             Topic = "Society"
	TopicCulture             Topic = "Culture"
	TopicTravelTourism       Topic = "Travel & Tourism"
	TopicMediaCommunication  Topic = "Media & Communication"
	TopicCrimeLaw            Topic = "Crime & Law"
	TopicGovernmentPolitics  Topic = "Government & Politics"
	TopicEconomyBusiness     Topic = "Economy & Business"
	TopicScienceResearch     Topic = "Science & Research"
	TopicHousingUrbanLife    Topic = "Housing & Urban Life"
	TopicTransportation      Topic = "Transportation"
	TopicFamilyRelationships Topic = "Family & Relationships"
	TopicFoodDiet            Topic = "Food & Diet"
	TopicSportsFitness       Topic = "Sports & Fitness"
	TopicArtsEntertainment   Topic = "Arts & Entertainment"
	TopicAnimalsWildlife     Topic = "Animals & Wildlife"
	TopicClimateEnergy       Topic = "Climate & Energy"
)

// Topics is the closed topic enumeration in its canonical order.
var Topics = []Topic{
	TopicEducation,
	TopicTechnology,
	TopicEnvironment,
	TopicHealth,
	TopicWorkCareer,
	TopicSociety,
	TopicCulture,
	TopicTravelTourism,
	TopicMediaCommunication,
	TopicCrimeLaw,
	TopicGovernmentPolitics,
	TopicEconomyBusiness,
	TopicScienceResearch,
	TopicHousingUrbanLife,
	TopicTransportation,
	TopicFamilyRelationships,
	TopicFoodDiet,
	TopicSportsFitness,
	TopicArtsEntertainment,
	TopicAnimalsWildlife,
	TopicClimateEnergy,
}

var topicSet = func() map[Topic]struct{} {
	m := make(map[Topic]struct{}, len(Topics))
	for _, t := range Topics {
		m[t] = struct{}{}
	}
	return m
}()

func (t Topic) String() string { return string(t) }

// IsValid reports whether t is an exact member of the enumeration.
// Matching is case-sensitive and never approximate.
func (t Topic) IsValid() bool {
	_, ok := topicSet[t]
	return ok
}

// FilterTopics keeps only the values that belong to the enumeration,
// preserving their order. Unknown values are dropped.
func FilterTopics(values []string) []Topic {
	out := make([]Topic, 0, len(values))
	for _, v := range values {
		if t := Topic(v); t.IsValid() {
			out = append(out, t)
		}
	}
	return out
}

// TopicStrings returns the enumeration as plain strings, in order.
func TopicStrings() []string {
	out := make([]string, len(Topics))
	for i, t := range Topics {
		out[i] = string(t)
	}
	return out
}

// topicList is the enumeration as it is embedded into prompts.
func topicList() string {
	return strings.Join(TopicStrings(), ", ")
}
