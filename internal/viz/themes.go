package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the chrome around the arena. Bodies keep their own colours.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Arena      lipgloss.Color
	Muted      lipgloss.Color
}

var (
	ThemeCandy = Theme{
		Name:       "candy",
		Primary:    lipgloss.Color("#ff5fa2"),
		Secondary:  lipgloss.Color("#4fb3ff"),
		Background: lipgloss.Color("#14101c"),
		Arena:      lipgloss.Color("#f2e9ff"),
		Muted:      lipgloss.Color("#6b5a80"),
	}

	ThemeRetro = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"),
		Secondary:  lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Arena:      lipgloss.Color("#00cc00"),
		Muted:      lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#888888"),
		Background: lipgloss.Color("#000000"),
		Arena:      lipgloss.Color("#cccccc"),
		Muted:      lipgloss.Color("#555555"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0077be"),
		Secondary:  lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Arena:      lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
	}

	CurrentTheme = ThemeCandy

	Themes = []Theme{ThemeCandy, ThemeRetro, ThemeMinimal, ThemeOcean}
)

// GetTheme returns a theme by name, or the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCandy
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() Theme {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return CurrentTheme
		}
	}
	CurrentTheme = Themes[0]
	return CurrentTheme
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
