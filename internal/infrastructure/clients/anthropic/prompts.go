package anthropic

import "fmt"

const directionalityRules = `Metric interpretation rules:
- Time measures in minutes: lower is better.
- Compliance measures in percent: higher is better.
- Infection SIR: lower is better.
- Mortality/complication rates: lower is better.
- ED volume categories (if present) are context only, not good/bad.
- Only make 'compared to national' statements when the data explicitly includes a comparison label.`

// buildSummaryPrompt renders the fixed instruction around the compact report
// JSON. No external links on purpose, to keep the model from inventing
// citations.
func buildSummaryPrompt(facility, compactJSON string) string {
	return fmt.Sprintf(`You are a hospital quality and performance analyst writing for executive leadership.

Using only the provided JSON performance data for the facility: %s,
produce a one-screen, executive-ready performance summary suitable for display
inside an analytics dashboard.

Formatting rules (important):
- Do NOT use Markdown.
- Do NOT use hashtags (#), asterisks (*), or bullet symbols.
- Use plain text only.
- Separate sections using line breaks.
- Use short section titles followed by paragraphs or hyphen-free sentences.

Structure the output exactly as follows:

AI-Assisted Performance Summary
Facility Name

Overall Performance Snapshot
(2-3 concise sentences summarizing overall performance using only what the data supports)

Key Strengths
(2-3 short sentences highlighting the strongest areas supported by the data)

Priority Concerns
(3-4 short sentences identifying underperforming or high-risk areas supported by the data)

Key Interconnections
(1-2 sentences linking related patterns WITHOUT implying causality)

Prioritized Actions
(2-3 concise, process-focused recommendations directly tied to the weakest metrics)

Content rules:
- Base all insights strictly on the provided metrics.
- Avoid causal claims; describe patterns only.
- Do not introduce new programs, technologies, staffing assumptions, or speculative causes.
- Do not reference internal variable names.
- Do not use measure IDs; use the provided metric names when available.
- Prioritize insights in proportion to dashboard prominence: ED flow and access, sepsis timeliness, readmissions, and patient experience.
- Keep the tone neutral and executive-friendly.
- Do not exceed 200-250 words.

%s

JSON:
%s`, facility, directionalityRules, compactJSON)
}
