package render

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"CryptoIntel/internal/model"
)

// ErrTemplateMissing reports that the template file could not be located.
// Callers treat this as reportable, not fatal to other outputs.
var ErrTemplateMissing = errors.New("template not found")

// ErrUnknownToken reports a placeholder in the template the renderer does not
// know how to fill.
var ErrUnknownToken = errors.New("unknown template token")

// tokenPattern matches placeholder tokens like {{DATE_RANGE}}.
var tokenPattern = regexp.MustCompile(`\{\{[A-Z_]+\}\}`)

// priceDataMarker is the comment inside the template's script block that the
// generated price object replaces.
const priceDataMarker = "// {{PRICE_DATA}}"

// jsOrder is the asset order of the generated realTimePrices object. It must
// stay stable so rendering is byte-for-byte deterministic.
var jsOrder = []string{"btc", "eth", "pls", "hex", "usdt", "dai"}

// Renderer substitutes computed data into the newsletter template.
type Renderer struct {
	TemplatePath string
}

func NewRenderer(templatePath string) *Renderer {
	return &Renderer{TemplatePath: templatePath}
}

// Render reads the template and replaces every placeholder. Tokens the
// renderer does not recognize fail the render rather than passing through
// silently; a missing price record renders as a zero record rather than
// crashing.
func (r *Renderer) Render(prices map[string]model.PriceRecord, sentiment model.SentimentReading, week model.WeekRange) (string, error) {
	data, err := os.ReadFile(r.TemplatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrTemplateMissing, r.TemplatePath)
		}
		return "", fmt.Errorf("read template: %w", err)
	}
	html := string(data)

	replacements := map[string]string{
		"{{DATE_RANGE}}":       week.Label(),
		"{{FEAR_GREED_VALUE}}": strconv.Itoa(sentiment.Value),
		"{{FEAR_GREED_CLASS}}": strings.ToUpper(sentiment.Classification),
		"{{PRICE_DATA}}":       "", // replaced via its comment marker below
	}
	for _, token := range tokenPattern.FindAllString(html, -1) {
		if _, ok := replacements[token]; !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownToken, token)
		}
	}

	html = strings.ReplaceAll(html, priceDataMarker, priceDataJS(prices))
	html = strings.ReplaceAll(html, "{{DATE_RANGE}}", replacements["{{DATE_RANGE}}"])
	html = strings.ReplaceAll(html, "{{FEAR_GREED_VALUE}}", replacements["{{FEAR_GREED_VALUE}}"])
	html = strings.ReplaceAll(html, "{{FEAR_GREED_CLASS}}", replacements["{{FEAR_GREED_CLASS}}"])

	// A bare {{PRICE_DATA}} outside its comment marker would survive the
	// marker replacement; catch it and anything else left behind.
	if leftover := tokenPattern.FindString(html); leftover != "" {
		return "", fmt.Errorf("%w: %s left unreplaced", ErrUnknownToken, leftover)
	}
	return html, nil
}

// priceDataJS renders the realTimePrices object consumed by the template's
// chart script.
func priceDataJS(prices map[string]model.PriceRecord) string {
	var b strings.Builder
	b.WriteString("const realTimePrices = {\n")
	for i, symbol := range jsOrder {
		p := prices[symbol]
		b.WriteString(fmt.Sprintf("            %s: { price: %s, change: %s, ath: %s, atl: %s }",
			symbol, jsNum(p.Price), jsNum(p.Change24h), jsNum(p.ATH), jsNum(p.ATL)))
		if i < len(jsOrder)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("        };")
	return b.String()
}

func jsNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
