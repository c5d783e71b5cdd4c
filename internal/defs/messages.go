// internal/defs/messages.go
package defs

import (
	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
)

var distanceMessages = []struct {
	below   int
	message string
}{
	{config.DistancePoor, "Keep adjusting, you will get there!"},
	{config.DistanceFair, "A decent flight!"},
	{config.DistanceGood, "Great distance!"},
	{config.DistanceExcellent, "An amazing distance!!"},
}

const recordMessage = "An unbelievable record!!!"

var eventMessages = map[component.EventKind]struct{ headline, message string }{
	component.EventPoopCrash: {"Poop crash!", "It nosedived straight into a poop. How gross!"},
	component.EventBirdCarry: {"Bird abduction!", "A bird carried your airplane away. How rare!"},
	component.EventMoon:      {"Reached the moon!", "Unbelievable! It flew all the way to the moon!!!"},
}

// DistanceMessage picks the landing message for a plain flight.
func DistanceMessage(distance int) string {
	for _, m := range distanceMessages {
		if distance < m.below {
			return m.message
		}
	}
	return recordMessage
}

// EventMessage returns the headline and message for a special event.
func EventMessage(kind component.EventKind) (headline, message string, ok bool) {
	m, ok := eventMessages[kind]
	return m.headline, m.message, ok
}

// BalanceComment describes the balance setting of a landed flight.
func BalanceComment(balance float64) string {
	switch {
	case balance < config.FrontHeavyComment:
		return "Front-heavy: built for speed."
	case balance > config.RearHeavyComment:
		return "Rear-heavy: built for stability."
	}
	return "A well balanced centre of gravity."
}
