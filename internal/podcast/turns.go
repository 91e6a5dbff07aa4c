// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package podcast

import (
	"strings"

	"github.com/pdiddy/multimodal-researcher/pkg/types"
)

// Turn is one speaker-labeled line of a script.
type Turn struct {
	Speaker string
	Line    string
}

// SpeakerTurns returns the lines of script that start with one of the two
// speaker labels. Markdown emphasis around the label ("**রাহুল:**") is
// tolerated. Other lines are ignored; the script itself is never rewritten.
func SpeakerTurns(script types.PodcastScript) []Turn {
	var turns []Turn
	for _, raw := range strings.Split(string(script), "\n") {
		line := strings.TrimSpace(raw)
		line = strings.TrimLeft(line, "*_ ")
		for _, speaker := range []string{Host, Expert} {
			rest, ok := strings.CutPrefix(line, speaker)
			if !ok {
				continue
			}
			rest = strings.TrimLeft(rest, "*_ ")
			rest, ok = strings.CutPrefix(rest, ":")
			if !ok {
				continue
			}
			rest = strings.TrimSpace(strings.TrimLeft(rest, "*_"))
			turns = append(turns, Turn{Speaker: speaker, Line: rest})
			break
		}
	}
	return turns
}

// Alternates reports whether consecutive turns always switch speaker.
func Alternates(turns []Turn) bool {
	for i := 1; i < len(turns); i++ {
		if turns[i].Speaker == turns[i-1].Speaker {
			return false
		}
	}
	return true
}
