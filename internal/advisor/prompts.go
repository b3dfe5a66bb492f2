package advisor

import (
	"fmt"
	"strings"

	"github.com/yungbote/ecotrack-backend/internal/footprint"
)

const RecommendationSystemPrompt = "You are an expert in ecology and energy conservation. " +
	"You MUST respond ONLY in English language - never use Russian, Kazakh, or any other language. " +
	"Provide practical advice for users to reduce their environmental impact and save money on utilities. " +
	"Consider current weather conditions and weather forecasts in your recommendations to make them more relevant and actionable."

const InsightSystemPrompt = "You are an environmental AI assistant. Always respond in English only. " +
	"Provide practical, actionable CO2 reduction insights based on consumption data and weather conditions."

// InsightMaxTokens bounds the insight completion.
const InsightMaxTokens = 1500

// RecommendationPrompt asks for 3-5 recommendations as a {"recommendations": [...]} object.
func RecommendationPrompt(s Summary, weatherCtx string) string {
	if strings.TrimSpace(weatherCtx) == "" {
		weatherCtx = WeatherUnavailable
	}
	var b strings.Builder
	b.WriteString("IMPORTANT: Respond ONLY in English. Do not use any other language.\n\n")
	b.WriteString("Analyze the user's resource consumption data and provide 3-5 personalized recommendations ")
	b.WriteString("to reduce consumption and environmental footprint.\n\n")
	fmt.Fprintf(&b, "Consumption data for the last %d months:\n", SummaryWindow)
	fmt.Fprintf(&b, "- Electricity: %s kWh\n", formatQuantity(s.Electricity))
	fmt.Fprintf(&b, "- Water: %s m³\n", formatQuantity(s.Water))
	fmt.Fprintf(&b, "- Gas: %s m³\n\n", formatQuantity(s.Gas))
	fmt.Fprintf(&b, "Weather context: %s\n\n", weatherCtx)
	b.WriteString(`Requirements for recommendations:
1. Write ALL text in English language only
2. Specific and actionable advice based on current and forecasted weather
3. Potential savings in dollars per month (estimate realistic amounts)
4. Environmental impact consideration
5. Priority level (high/medium/low)
6. Consider both current weather and upcoming weather forecast for seasonal recommendations
7. Reference specific weather conditions in your recommendations when relevant

Respond in JSON format with ALL text in English:
{
  "recommendations": [
    {
      "title": "Brief English title",
      "description": "Detailed English action description that references weather when relevant",
      "category": "electricity/water/gas/general",
      "potentialSavings": "15-25",
      "priority": "high/medium/low"
    }
  ]
}
`)
	return b.String()
}

// InsightPrompt asks for exactly 3-4 CO2 insights as an {"insights": [...]} object.
// kg is the insights-set breakdown in kilograms.
func InsightPrompt(kg footprint.Breakdown, weatherCtx, equivalency string) string {
	var b strings.Builder
	b.WriteString("You are an environmental AI assistant analyzing CO2 emissions data. ")
	b.WriteString("Please provide EXACTLY 3-4 insights in English only. DO NOT use Russian language.\n\n")
	b.WriteString("User's CO2 emissions data:\n")
	fmt.Fprintf(&b, "- Total CO2 emissions: %.2f kg\n", kg.Total())
	fmt.Fprintf(&b, "- Electricity: %.2f kg CO2\n", kg.Electricity)
	fmt.Fprintf(&b, "- Gas: %.2f kg CO2\n", kg.Gas)
	fmt.Fprintf(&b, "- Water: %.2f kg CO2\n", kg.Water)
	if equivalency != "" {
		fmt.Fprintf(&b, "- %s\n", equivalency)
	}
	b.WriteString("\n")
	if weatherCtx != "" {
		b.WriteString(weatherCtx)
		b.WriteString("\n\n")
	}
	b.WriteString(`Please provide insights about:
1. Overall environmental impact and how it compares to average household
2. Which utility contributes most to CO2 and specific actions to reduce it
3. Weather-related environmental impact and seasonal recommendations
4. Benefits and positive impact the user has made

For each insight, provide:
- title: Brief descriptive title
- description: Detailed explanation and specific recommendations
- category: electricity, gas, water, or environmental
- priority: high, medium, or low
- potentialSavings: Estimated CO2 reduction potential (e.g., "15kg CO2 per month")

Respond in JSON format as an object with an "insights" array. Use ONLY English language.`)
	return b.String()
}
