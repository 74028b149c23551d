package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/regexlab/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ███████╗ ██████╗ ███████╗██╗  ██╗██╗      █████╗ ██████╗
 ██╔══██╗██╔════╝██╔════╝ ██╔════╝╚██╗██╔╝██║     ██╔══██╗██╔══██╗
 ██████╔╝█████╗  ██║  ███╗█████╗   ╚███╔╝ ██║     ███████║██████╔╝
 ██╔══██╗██╔══╝  ██║   ██║██╔══╝   ██╔██╗ ██║     ██╔══██║██╔══██╗
 ██║  ██║███████╗╚██████╔╝███████╗██╔╝ ██╗███████╗██║  ██║██████╔╝
 ╚═╝  ╚═╝╚══════╝ ╚═════╝ ╚══════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═════╝`

const bannerCompact = "R E G E X L A B"

// bannerWidth is the widest line of bannerArt in cells.
const bannerWidth = 66

// RenderBanner returns the banner styled in the primary color, falling
// back to a single line when the terminal is too narrow for the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
