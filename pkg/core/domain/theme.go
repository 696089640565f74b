package domain

const DefaultThemeID = "default"

type Theme struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	ButtonColor     string `json:"button_color"`
	ButtonTextColor string `json:"button_text_color"`
}

var Themes = []Theme{
	{ID: "default", Name: "Default", BackgroundColor: "#ffffff", TextColor: "#000000", ButtonColor: "#000000", ButtonTextColor: "#ffffff"},
	{ID: "dark", Name: "Dark", BackgroundColor: "#1a1a1a", TextColor: "#ffffff", ButtonColor: "#ffffff", ButtonTextColor: "#000000"},
	{ID: "purple", Name: "Purple", BackgroundColor: "#f3f4f6", TextColor: "#1f2937", ButtonColor: "#8b5cf6", ButtonTextColor: "#ffffff"},
	{ID: "blue", Name: "Blue", BackgroundColor: "#eff6ff", TextColor: "#1e40af", ButtonColor: "#3b82f6", ButtonTextColor: "#ffffff"},
	{ID: "green", Name: "Green", BackgroundColor: "#f0fdf4", TextColor: "#166534", ButtonColor: "#22c55e", ButtonTextColor: "#ffffff"},
	{ID: "pink", Name: "Pink", BackgroundColor: "#fdf2f8", TextColor: "#be185d", ButtonColor: "#ec4899", ButtonTextColor: "#ffffff"},
}

// LookupTheme returns the theme with the given id.
func LookupTheme(id string) (Theme, bool) {
	for _, t := range Themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// ThemeOrDefault never fails; unknown ids render with the default theme.
func ThemeOrDefault(id string) Theme {
	if t, ok := LookupTheme(id); ok {
		return t
	}
	return Themes[0]
}
