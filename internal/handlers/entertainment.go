package handlers

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/tnyamukapa/shopbot/internal/boterr"
	"github.com/tnyamukapa/shopbot/internal/command"
	"github.com/tnyamukapa/shopbot/internal/dispatch"
	"github.com/tnyamukapa/shopbot/internal/reply"
)

var (
	truths = []string{
		"What's the most embarrassing thing you've bought online?",
		"Have you ever returned something after using it?",
		"What's the longest you've gone without checking your phone?",
		"What impulse purchase do you regret the most?",
	}
	dares = []string{
		"Send the last photo in your gallery to this chat.",
		"Type your next three messages in ALL CAPS.",
		"Share your most-used emoji right now.",
		"Voice note yourself singing the first song that comes to mind.",
	}
	jokes = []string{
		"Why don't scientists trust atoms? Because they make up everything!",
		"I told my wife she was drawing her eyebrows too high. She looked surprised.",
		"Why did the scarecrow win an award? He was outstanding in his field!",
		"I'm reading a book about anti-gravity. It's impossible to put down!",
		"Why don't eggs tell jokes? They'd crack each other up.",
	}
	quotes = []string{
		"The only way to do great work is to love what you do. — Steve Jobs",
		"Success is not final, failure is not fatal: it is the courage to continue that counts. — Winston Churchill",
		"It always seems impossible until it's done. — Nelson Mandela",
		"Your time is limited, so don't waste it living someone else's life. — Steve Jobs",
		"The best time to plant a tree was 20 years ago. The second best time is now.",
	}
	eightBall = []string{
		"It is certain.", "Without a doubt.", "Yes, definitely.",
		"Most likely.", "Ask again later.", "Cannot predict now.",
		"Don't count on it.", "My sources say no.", "Very doubtful.",
	}
	rathers = []string{
		"Would you rather have free delivery forever or 50% off everything for a year?",
		"Would you rather only shop online or only shop in person?",
		"Would you rather have unlimited airtime or unlimited data?",
		"Would you rather win $1000 now or $100 every month for two years?",
	}
	riddles = []struct{ q, a string }{
		{"What has keys but can't open locks?", "piano"},
		{"What has to be broken before you can use it?", "egg"},
		{"What gets wetter the more it dries?", "towel"},
		{"What has a head and a tail but no body?", "coin"},
	}
	trivias = []struct{ q, a string }{
		{"What is the capital of Zimbabwe?", "harare"},
		{"How many continents are there?", "7"},
		{"What is the largest planet in our solar system?", "jupiter"},
		{"Which ocean is the largest?", "pacific"},
	}
)

// Entertainment serves the games category. Riddle and trivia answers
// park in the user's session and are checked on the next message.
func Entertainment(ctx context.Context, d *command.Descriptor, args []string, bctx *dispatch.Context) (reply.Reply, error) {
	switch d.Canonical {
	case "fun":
		r, _ := bctx.Registry.CategoryMenu(command.CategoryEntertainment)
		return r, nil
	case "dice":
		return reply.Textf("🎲 You rolled a *%d*!", rand.Intn(6)+1), nil
	case "coin":
		side := "Heads"
		if rand.Intn(2) == 1 {
			side = "Tails"
		}
		return reply.Textf("🪙 *%s*!", side), nil
	case "lucky":
		return reply.Textf("🍀 Your lucky number today is *%d*!", rand.Intn(100)+1), nil
	case "truth":
		if rand.Intn(2) == 0 {
			return reply.Textf("🤔 *TRUTH*\n\n%s", truths[rand.Intn(len(truths))]), nil
		}
		return reply.Textf("😈 *DARE*\n\n%s", dares[rand.Intn(len(dares))]), nil
	case "joke":
		return reply.Textf("😂 %s", jokes[rand.Intn(len(jokes))]), nil
	case "quote":
		return reply.Textf("💭 %s", quotes[rand.Intn(len(quotes))]), nil
	case "riddle":
		riddle := riddles[rand.Intn(len(riddles))]
		sess := bctx.Sessions.Session(bctx.UserID)
		sess.RiddleAnswer = riddle.a
		bctx.Sessions.PutSession(bctx.UserID, sess)
		return reply.Textf("🧩 *RIDDLE*\n\n%s\n\nReply with your answer!", riddle.q), nil
	case "8ball":
		return reply.Textf("🎱 %s", eightBall[rand.Intn(len(eightBall))]), nil
	case "rather":
		return reply.Textf("🤷 %s", rathers[rand.Intn(len(rathers))]), nil
	case "trivia":
		trivia := trivias[rand.Intn(len(trivias))]
		sess := bctx.Sessions.Session(bctx.UserID)
		sess.TriviaAnswer = trivia.a
		bctx.Sessions.PutSession(bctx.UserID, sess)
		return reply.Textf("🧠 *TRIVIA*\n\n%s\n\nReply with your answer!", trivia.q), nil
	default:
		return reply.Reply{}, boterr.Newf(boterr.Unexpected, "entertainment: unrouted command %q", d.Canonical)
	}
}

// CheckGameAnswer resolves a pending riddle or trivia answer. It
// returns false when the user has no game in flight, letting the
// caller treat the message as ordinary text.
func CheckGameAnswer(bctx *dispatch.Context, text string) (reply.Reply, bool) {
	sess := bctx.Sessions.Session(bctx.UserID)
	guess := strings.ToLower(strings.TrimSpace(text))

	if sess.RiddleAnswer != "" {
		want := sess.RiddleAnswer
		sess.RiddleAnswer = ""
		bctx.Sessions.PutSession(bctx.UserID, sess)
		if strings.Contains(guess, want) {
			return reply.Text("🎉 Correct! Nicely done."), true
		}
		return reply.Text(fmt.Sprintf("❌ Not quite! The answer was *%s*.\nTry another with !riddle", want)), true
	}

	if sess.TriviaAnswer != "" {
		want := sess.TriviaAnswer
		sess.TriviaAnswer = ""
		bctx.Sessions.PutSession(bctx.UserID, sess)
		if strings.Contains(guess, want) {
			return reply.Text("🎉 Correct! You know your stuff."), true
		}
		return reply.Text(fmt.Sprintf("❌ Wrong! The answer was *%s*.\nPlay again with !trivia", want)), true
	}

	return reply.Reply{}, false
}
