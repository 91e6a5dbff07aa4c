// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package podcast

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/multimodal-researcher/pkg/types"
)

// The two fixed speakers of every episode.
const (
	Host   = "রাহুল"
	Expert = "সাবিনা"
)

var scriptPromptTmpl = template.Must(template.New("script").Parse(`নিচের গবেষণা বিষয়বস্তু ব্যবহার করে, {{.Host}} (উপস্থাপক) এবং {{.Expert}} (বিশেষজ্ঞ)-এর মধ্যে "{{.Topic}}" বিষয়ক একটি স্বাভাবিক, আকর্ষণীয় পডকাস্ট আলোচনা বাংলায় তৈরি করুন।

গবেষণা ফলাফল:
{{.SearchText}}

ভিডিও বিশ্লেষণ:
{{.VideoText}}

ডায়ালগ আকারে উপস্থাপন করুন:
- {{.Host}} বিষয়টি উপস্থাপন করবে এবং প্রশ্ন করবে
- {{.Expert}} মূল ধারণা ও বিশ্লেষণ ব্যাখ্যা করবে
- স্বাভাবিক কথোপকথন (৫-৭ বার আদান-প্রদান)
- {{.Host}} অনুসরণমূলক প্রশ্ন করবে
- {{.Expert}} মূল বিষয়গুলো সংক্ষেপে তুলে ধরবে
- কথোপকথনটি সহজবোধ্য ও আকর্ষণীয় রাখুন (৩-৪ মিনিটের মধ্যে)

নিম্নরূপ ফরম্যাটে দিন:
{{.Host}}: [প্রশ্ন]
{{.Expert}}: [উত্তর]
{{.Host}}: [অনুসরণমূলক প্রশ্ন]
{{.Expert}}: [ব্যাখ্যা]
[চলতে থাকুক...]
`))

var ttsPromptTmpl = template.Must(template.New("tts").Parse(`TTS the following conversation in Bengali between {{.Host}} and {{.Expert}}:
{{.Script}}`))

type promptData struct {
	Host, Expert string
	Topic        string
	SearchText   string
	VideoText    string
	Script       string
}

// ScriptPrompt renders the dialogue-generation prompt for in.
func ScriptPrompt(in types.ResearchInput) (string, error) {
	return execute(scriptPromptTmpl, promptData{
		Host:       Host,
		Expert:     Expert,
		Topic:      in.Topic,
		SearchText: in.SearchText,
		VideoText:  in.VideoText,
	})
}

// SpeechPrompt wraps a generated script for the speech endpoint.
func SpeechPrompt(script types.PodcastScript) (string, error) {
	return execute(ttsPromptTmpl, promptData{
		Host:   Host,
		Expert: Expert,
		Script: string(script),
	})
}

func execute(tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
