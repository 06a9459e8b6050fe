// Package intent maps free-form user text to a canned agent reply once
// the scripted dialogue has run out.
package intent

import (
	"strings"

	"github.com/PabloGalante/farum-demo/internal/domain"
)

// Rule names, in priority order.
const (
	RulePricing     = "pricing"
	RuleRecording   = "recording"
	RuleReschedule  = "reschedule"
	RuleHelp        = "help"
	RuleAffirmative = "affirmative"
	RuleNegative    = "negative"
	RuleClarify     = "clarify"
)

// Reply is the classifier's answer. Options is nil for terminal turns.
type Reply struct {
	Rule    string
	Content string
	Options []domain.Option
}

type rule struct {
	name     string
	keywords []string
	content  string
	options  []domain.Option
}

func opt(text string, s domain.Sentiment) domain.Option {
	return domain.Option{Text: text, Sentiment: s}
}

// rules are checked top to bottom; the first one with any keyword
// contained in the lowercased input wins.
var rules = []rule{
	{
		name:     RulePricing,
		keywords: []string{"price", "cost", "how much"},
		content:  "Great question! The webinar itself is completely free. If you want to go further, our Pro plan starts at $49/month and includes live workshops and the full template library.",
		options: []domain.Option{
			opt("Tell me more about Pro", domain.SentimentPositive),
			opt("I'll stick with the free webinar", domain.SentimentNeutral),
		},
	},
	{
		name:     RuleRecording,
		keywords: []string{"record", "replay", "watch later"},
		content:  "Yes! Every registered attendee gets the full recording within 24 hours, so you can watch it whenever it suits you.",
		options: []domain.Option{
			opt("Register me for the recording", domain.SentimentPositive),
			opt("I'd rather join live", domain.SentimentNeutral),
		},
	},
	{
		name:     RuleReschedule,
		keywords: []string{"busy", "not available", "no time"},
		content:  "No problem at all, I know schedules get packed. We run the same session again next week. Would another slot work better for you?",
		options: []domain.Option{
			opt("Show me other dates", domain.SentimentPositive),
			opt("Just send me the recording", domain.SentimentNeutral),
		},
	},
	{
		name:     RuleHelp,
		keywords: []string{"help", "what", "?"},
		content:  "Happy to help! Here is what I can do for you:",
		options: []domain.Option{
			opt("Webinar details", domain.SentimentNeutral),
			opt("Pricing information", domain.SentimentNeutral),
			opt("Talk to a human", domain.SentimentNeutral),
		},
	},
	{
		name:     RuleAffirmative,
		keywords: []string{"yes", "sure", "okay", "ok"},
		content:  "Awesome! What would you like to do next?",
		options: []domain.Option{
			opt("Add it to my calendar", domain.SentimentPositive),
			opt("Send me a reminder", domain.SentimentPositive),
			opt("Invite a colleague", domain.SentimentNeutral),
		},
	},
	{
		name:     RuleNegative,
		keywords: []string{"no", "not interested", "stop"},
		content:  "Understood, I won't bother you further. Thanks for your time, and feel free to reach out whenever you need us!",
	},
}

var clarify = rule{
	name:    RuleClarify,
	content: "I'm not sure I got that. Could you tell me a bit more about what you're looking for?",
	options: []domain.Option{
		opt("Webinar details", domain.SentimentNeutral),
		opt("Pricing", domain.SentimentNeutral),
		opt("Recording", domain.SentimentNeutral),
		opt("Not interested", domain.SentimentNegative),
	},
}

// Classify returns the reply of the first matching rule. Callers must not
// pass blank input.
func Classify(text string) Reply {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.reply()
			}
		}
	}
	return clarify.reply()
}

func (r rule) reply() Reply {
	var options []domain.Option
	if r.options != nil {
		options = append([]domain.Option(nil), r.options...)
	}
	return Reply{Rule: r.name, Content: r.content, Options: options}
}
