package extract

import "regexp"

// reagentContainers are phrases where "reagent" describes labware, not a
// consumable chemical.
var reagentContainers = regexp.MustCompile(`(?i)\breagent\s+(bottles?|reservoirs?|troughs?|racks?)\b`)

var reagentWords = regexp.MustCompile(
	`(?i)\b(reagents?|buffers?|antibod(y|ies)|enzymes?|kits?|solutions?|media|medium|serum|chemicals?|acids?|dyes?|stains?|primers?|substrates?)\b`,
)

// IsReagent reports whether an item name describes a consumable reagent
// rather than equipment or labware.
func IsReagent(rawName string) bool {
	return reagentWords.MatchString(reagentContainers.ReplaceAllString(rawName, ""))
}
