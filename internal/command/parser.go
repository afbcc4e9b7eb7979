package command

import (
	"regexp"
	"strings"
)

// Parsed is the outcome of reading a prefixed command message.
type Parsed struct {
	Command string
	Args    []string
	RawArgs string
	Prefix  string
}

// Parser turns raw message text into commands or, failing that, a
// coarse natural-language intent.
type Parser struct {
	prefixes []string
	intents  []intentRule
}

type intentRule struct {
	re     *regexp.Regexp
	intent string
}

// Intent names produced by DetectIntent.
const (
	IntentOrder      = "order"
	IntentBrowse     = "browse"
	IntentAddToCart  = "add_to_cart"
	IntentRemove     = "remove_from_cart"
	IntentCheckout   = "checkout"
	IntentTrack      = "track"
	IntentGreet      = "greet"
	IntentHelp       = "help"
	IntentProfile    = "profile"
	IntentPromotions = "promotions"
	IntentAnalytics  = "analytics"
)

// Rule order is a priority: "order" outranks the generic "browse", so
// "I want to order a pizza" never reads as browsing.
var intentRules = []struct {
	pattern string
	intent  string
}{
	{`i want|i'd like|can i get|order|buy|give me|get me`, IntentOrder},
	{`show|list|menu|what's|what do you|products|see|view|browse|trending|popular|deals|promotion`, IntentBrowse},
	{`add|put|include|cart`, IntentAddToCart},
	{`remove|delete|take out`, IntentRemove},
	{`checkout|pay|payment|confirm|place order|proceed`, IntentCheckout},
	{`track|status|where is|when|delivery|where's`, IntentTrack},
	{`hello|hi|hey|greetings|start|welcome`, IntentGreet},
	{`help|commands|what can|assistance|how to|contact|owner|info|about`, IntentHelp},
	{`my profile|account|settings|preferences|my info|feedback`, IntentProfile},
	{`promo|code|discount|voucher|offer|save`, IntentPromotions},
	{`stats|analytics|performance|sales|revenue|metrics`, IntentAnalytics},
}

func NewParser(prefixes []string) *Parser {
	p := &Parser{prefixes: prefixes}
	for _, rule := range intentRules {
		p.intents = append(p.intents, intentRule{
			re:     regexp.MustCompile(`(?i)` + rule.pattern),
			intent: rule.intent,
		})
	}
	return p
}

// IsCommand reports whether text starts with a recognized prefix.
func (p *Parser) IsCommand(text string) bool {
	trimmed := strings.TrimSpace(text)
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// Parse reads "<prefix><command> [args...]". The command token is
// lower-cased; args are whitespace-split. Empty and prefix-only
// messages do not parse.
func (p *Parser) Parse(text string) (Parsed, bool) {
	trimmed := strings.TrimSpace(text)
	var prefix string
	for _, candidate := range p.prefixes {
		if strings.HasPrefix(trimmed, candidate) {
			prefix = candidate
			break
		}
	}
	if prefix == "" {
		return Parsed{}, false
	}

	rest := strings.TrimSpace(trimmed[len(prefix):])
	if rest == "" {
		return Parsed{}, false
	}

	command, rawArgs, _ := strings.Cut(rest, " ")
	rawArgs = strings.TrimSpace(rawArgs)

	return Parsed{
		Command: strings.ToLower(command),
		Args:    strings.Fields(rawArgs),
		RawArgs: rawArgs,
		Prefix:  prefix,
	}, true
}

// DetectIntent matches text against the ordered intent rules. First
// match wins; no match means the message is dropped by the caller.
func (p *Parser) DetectIntent(text string) (string, bool) {
	for _, rule := range p.intents {
		if rule.re.MatchString(text) {
			return rule.intent, true
		}
	}
	return "", false
}
