package domain

import (
	"fmt"
	"strings"
)

// Card geometry for the shareable SVG.
const (
	svgWidth  = 900
	svgHeight = 420
	barWidth  = 620
	barHeight = 16
	barX      = 240
	barY      = 190
)

// Baked colors so the card renders identically in-app and in email.
const (
	colorBG      = "#0d1117"
	colorCard    = "#161b22"
	colorText    = "#e6edf3"
	colorMuted   = "#94a3b8"
	colorBorder  = "#273244"
	colorPrimary = "#3b82f6"
)

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// BuildInfographicSVG renders the week as a standalone SVG card with the
// focus score, a progress bar and the top three goals.
func BuildInfographicSVG(card ScoreCard) string {
	pct := card.FocusScore
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := barWidth * pct / 100

	var goalLines strings.Builder
	for i, g := range topGoals(card.Goals, 3) {
		fmt.Fprintf(&goalLines,
			`<text x="60" y="%d" font-size="16" fill="%s">%s — %d%%</text>`+"\n",
			326+i*26, colorMuted, xmlEscaper.Replace(g.Title), g.MatchPercent)
	}

	return strings.TrimSpace(fmt.Sprintf(`
<svg xmlns="http://www.w3.org/2000/svg" width="%[1]d" height="%[2]d" viewBox="0 0 %[1]d %[2]d">
  <rect width="%[1]d" height="%[2]d" rx="22" fill="%[3]s" />
  <rect x="24" y="24" width="%[4]d" height="%[5]d" rx="18" fill="%[6]s" stroke="%[7]s" />
  <text x="60" y="92" font-size="28" font-weight="700" fill="%[8]s">Weekly Focus Summary</text>
  <text x="60" y="124" font-size="16" fill="%[9]s">%[10]s</text>

  <text x="60" y="196" font-size="16" fill="%[9]s">Focus Score</text>
  <text x="60" y="232" font-size="44" font-weight="800" fill="%[8]s">%[11]d</text>
  <text x="152" y="232" font-size="18" fill="%[9]s">/ 100</text>

  <rect x="%[12]d" y="%[13]d" width="%[14]d" height="%[15]d" rx="8" fill="#0b1220" stroke="%[7]s" />
  <rect x="%[12]d" y="%[13]d" width="%[16]d" height="%[15]d" rx="8" fill="%[17]s" />

  <text x="%[12]d" y="%[18]d" font-size="14" fill="%[9]s">Planned: %[19].1fh   •   Matched: %[20].1fh</text>

  <text x="60" y="252" font-size="14" fill="%[9]s">XP Earned: +%[21]d   •   Streak: %[22]d week(s)</text>

  <text x="60" y="300" font-size="18" font-weight="700" fill="%[8]s">Top Goals</text>
  %[23]s
  <text x="60" y="400" font-size="12" fill="%[9]s">FocusMirror • Align Your Time. Improve Your Life.</text>
</svg>`,
		svgWidth, svgHeight, colorBG,
		svgWidth-48, svgHeight-48, colorCard, colorBorder,
		colorText, colorMuted, xmlEscaper.Replace(card.WeekLabel),
		card.FocusScore,
		barX, barY, barWidth, barHeight, filled, colorPrimary,
		barY-14, card.TotalPlannedHours, card.TotalMatchedHours,
		card.XPEarned, card.CurrentStreak,
		goalLines.String()))
}
