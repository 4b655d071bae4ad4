package social

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"CryptoIntel/internal/model"
)

// indicator returns the colored marker for a 24h change. Only a strictly
// positive change counts as "up"; exactly zero takes the red branch.
func indicator(change float64) string {
	if change > 0 {
		return "🟢"
	}
	return "🔴"
}

// trendWord is the prose form of the same rule.
func trendWord(change float64) string {
	if change > 0 {
		return "up"
	}
	return "down"
}

func usd0(v float64) string { return "$" + humanize.FormatFloat("#,###.", v) }
func usd2(v float64) string { return "$" + humanize.FormatFloat("#,###.##", v) }

// Thread builds the tweet sequence for one issue: a header, the price movers,
// and a closing call-to-action.
func Thread(prices map[string]model.PriceRecord, week model.WeekRange, pagesURL, handle string) []string {
	var tweets []string

	tweets = append(tweets, fmt.Sprintf(`🧠 CRYPTO INTEL WEEKLY
%s

Your weekly dose of crypto market insights 🔥

📊 Price movements
💧 Liquidity flows
🌍 Global regulations
📣 Top influencer takes

Thread below 👇`, week.Label()))

	btc := prices["btc"]
	eth := prices["eth"]
	pls := prices["pls"]
	hex := prices["hex"]
	tweets = append(tweets, fmt.Sprintf(`📈 PRICE MOVERS

BTC: %s (%+.1f%%) %s
ETH: %s (%+.1f%%) %s
PLS: $%.6f (%+.1f%%) %s
HEX: $%.4f (%+.1f%%) %s

#Bitcoin #Ethereum #Crypto`,
		usd0(btc.Price), btc.Change24h, indicator(btc.Change24h),
		usd2(eth.Price), eth.Change24h, indicator(eth.Change24h),
		pls.Price, pls.Change24h, indicator(pls.Change24h),
		hex.Price, hex.Change24h, indicator(hex.Change24h)))

	tweets = append(tweets, fmt.Sprintf(`📰 Read the full newsletter with charts & analysis:
%s

🔔 Follow @%s for weekly crypto intelligence
♻️ RT to share with your crypto community

#CryptoNews #Newsletter`, pagesURL, handle))

	return tweets
}

// Caption builds the long-form caption variant.
func Caption(prices map[string]model.PriceRecord, week model.WeekRange) string {
	btc := prices["btc"]
	eth := prices["eth"]
	pls := prices["pls"]
	hex := prices["hex"]

	return fmt.Sprintf(`🧠 CRYPTO INTEL WEEKLY | %s

This week in crypto:
📈 BTC %s %.1f%% to %s
📈 ETH %s %.1f%% to %s
🚀 PLS %s %.1f%%
💎 HEX %s %.1f%%

Swipe 👉 for detailed charts, data & analysis

Full newsletter: Link in bio

---

#CryptoNews #Bitcoin #Ethereum #PulseChain #HEX #DeFi #CryptoTrading #Web3 #Blockchain #CryptoNewsletter #CryptoIntel #CryptoAnalysis #BTC #ETH #Stablecoins #CryptoMarket #DigitalAssets

Drop a 🔥 if you found this useful!`,
		week.Label(),
		trendWord(btc.Change24h), math.Abs(btc.Change24h), usd0(btc.Price),
		trendWord(eth.Change24h), math.Abs(eth.Change24h), usd2(eth.Price),
		trendWord(pls.Change24h), math.Abs(pls.Change24h),
		trendWord(hex.Change24h), math.Abs(hex.Change24h))
}

// FormatThreadFile lays out the tweets for the thread output file, one block
// per tweet with numbered separators.
func FormatThreadFile(tweets []string) string {
	var b strings.Builder
	for i, tweet := range tweets {
		b.WriteString(fmt.Sprintf("TWEET %d:\n", i+1))
		b.WriteString(tweet)
		b.WriteString("\n\n" + strings.Repeat("=", 50) + "\n\n")
	}
	return b.String()
}
