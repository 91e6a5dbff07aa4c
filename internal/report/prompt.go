// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/multimodal-researcher/pkg/types"
)

// synthesisPromptTmpl asks the model for a short Bengali synthesis of the
// search results and the video analysis.
var synthesisPromptTmpl = template.Must(template.New("synthesis").Parse(`আপনি একজন গবেষণা বিশ্লেষক। আমি "{{.Topic}}" বিষয়ক তথ্য দুটি উৎস থেকে সংগ্রহ করেছি:

অনুসন্ধান ফলাফল:
{{.SearchText}}

ভিডিও বিষয়বস্তু:
{{.VideoText}}

দয়া করে বাংলায় একটি সংক্ষিপ্ত ও সমন্বিত প্রতিবেদন তৈরি করুন, যেখানে:
১. উভয় উৎস থেকে মূল বিষয় ও অন্তর্দৃষ্টি চিহ্নিত করা হবে
২. পরিপূরক বা বিপরীত দৃষ্টিভঙ্গি থাকলে তা তুলে ধরা হবে
৩. এই মাল্টিমোডাল গবেষণার ভিত্তিতে সামগ্রিক বিশ্লেষণ থাকবে
৪. প্রতিবেদনটি সংক্ষিপ্ত কিন্তু তথ্যবহুল (৩-৪ অনুচ্ছেদ)

উভয় উৎসের সেরা অন্তর্দৃষ্টি একত্রিত করে একটি সুসংহত বিবরণ দিন। প্রতিবেদনটি সম্পূর্ণ বাংলায় লিখুন।
`))

// reportTmpl is the fixed markdown layout wrapped around the synthesis.
var reportTmpl = template.Must(template.New("report").Parse(`# {{.Title}}: {{.Topic}}

## সারসংক্ষেপ

{{.Synthesis}}

## ভিডিও সূত্র
- **URL**: {{.VideoURL}}

## অতিরিক্ত সূত্রসমূহ
{{.Sources}}

---
*ওয়েব অনুসন্ধান ও ভিডিও বিশ্লেষণ সমন্বিত মাল্টিমোডাল AI গবেষণার মাধ্যমে প্রতিবেদনটি তৈরি হয়েছে*
`))

const (
	// TitlePrefix opens every report.
	TitlePrefix = "গবেষণা প্রতিবেদন"

	// SummaryHeading introduces the synthesized prose.
	SummaryHeading = "## সারসংক্ষেপ"

	// noVideoURL is printed when the run had no source video.
	noVideoURL = "প্রযোজ্য নয়"
)

// Prompt renders the synthesis prompt for in. The output depends only on
// Topic, SearchText, and VideoText.
func Prompt(in types.ResearchInput) (string, error) {
	var buf bytes.Buffer
	if err := synthesisPromptTmpl.Execute(&buf, in); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Format wraps synthesis text in the report layout.
func Format(in types.ResearchInput, synthesis string) (string, error) {
	videoURL := in.VideoURL
	if videoURL == "" {
		videoURL = noVideoURL
	}

	var buf bytes.Buffer
	err := reportTmpl.Execute(&buf, struct {
		Title, Topic, Synthesis, VideoURL, Sources string
	}{
		Title:     TitlePrefix,
		Topic:     in.Topic,
		Synthesis: synthesis,
		VideoURL:  videoURL,
		Sources:   in.SearchSourcesText,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
