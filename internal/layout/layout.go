// Package layout computes the Miller-column geometry from a terminal size:
// three vertical column ranges, a content row range, and header/footer/log
// row positions, grounded on the teacher's draw_panels height arithmetic.
package layout

// Columns widths, as fractions of total width, matching the classic
// Miller-columns proportion used by the source project: a narrower parent
// column, a wider current column, and a preview column that takes the
// remainder.
const (
	leftFrac   = 0.20
	centerFrac = 0.35
)

// Layout describes where each region of the screen lives for one frame.
type Layout struct {
	Width, Height int

	LeftX, LeftW     int
	CenterX, CenterW int
	RightX, RightW   int

	HeaderY int
	ContentY, ContentH int
	LogY, LogH         int
	FooterY            int
}

// Compute derives a Layout for the given terminal size. logVisible
// reserves logLines rows above the footer for the log panel.
func Compute(width, height int, logVisible bool, logLines int) Layout {
	l := Layout{Width: width, Height: height}

	l.LeftW = max(1, int(float64(width)*leftFrac))
	l.CenterW = max(1, int(float64(width)*centerFrac))
	l.RightW = width - l.LeftW - l.CenterW
	if l.RightW < 1 {
		l.RightW = 1
	}

	l.LeftX = 0
	l.CenterX = l.LeftX + l.LeftW
	l.RightX = l.CenterX + l.CenterW

	l.HeaderY = 0
	l.FooterY = height - 1

	contentTop := l.HeaderY + 1
	contentBottom := l.FooterY

	if logVisible && logLines > 0 {
		if logLines > contentBottom-contentTop-1 {
			logLines = contentBottom - contentTop - 1
		}
		if logLines < 0 {
			logLines = 0
		}
		l.LogH = logLines
		l.LogY = contentBottom - logLines
		contentBottom = l.LogY
	}

	l.ContentY = contentTop
	l.ContentH = contentBottom - contentTop
	if l.ContentH < 0 {
		l.ContentH = 0
	}

	return l
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
