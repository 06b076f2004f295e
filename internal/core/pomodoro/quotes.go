package pomodoro

import (
	"math/rand"
	"time"
)

// QuoteInterval is how often the dashboard shows a new quote.
const QuoteInterval = 30 * time.Minute

// Quotes are the motivational lines shown under the Pomodoro timer.
var Quotes = []string{
	"Small steps daily create the biggest change.",
	"Focus is a superpower in a distracted world.",
	"Progress, not perfection, is the goal.",
	"Your future self will thank you for starting today.",
	"Consistency is the key to unlocking your potential.",
	"Every minute counts when you're building your dreams.",
	"Stay present, stay focused, stay productive.",
	"The best time to start was yesterday. The second best is now.",
	"Productivity is not about being busy, it's about being effective.",
	"One focused hour is worth ten distracted ones.",
	"Your attention is your most valuable asset.",
	"Small consistent actions lead to extraordinary results.",
}

// RandomQuote picks one of Quotes.
func RandomQuote(rng *rand.Rand) string {
	return Quotes[rng.Intn(len(Quotes))]
}
