// Package advisor holds the pure parts of recommendation and insight
// generation: input summaries, prompt construction, parsing of model output
// and the rule-based fallback. Orchestration and persistence live in
// internal/services.
package advisor
