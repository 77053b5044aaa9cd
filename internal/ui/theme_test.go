package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Nightfox", "Kanagawa", "Slate"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() returned %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames() = %v, want %v", names, want)
		}
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for in, want := range cases {
		if got := NextTheme(in); got != want {
			t.Fatalf("NextTheme(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestGetTheme_FallsBackToNightfox(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox (fallback)", got)
	}
}

func TestThemesDefineEveryButtonState(t *testing.T) {
	states := []buttonState{buttonReady, buttonDisabled, buttonLoading, buttonRetry}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, s := range states {
			if th.ButtonColors[s.String()] == "" {
				t.Fatalf("theme %s has no color for button state %s", name, s)
			}
		}
	}
}

func TestSearchBoxBg_FollowsFocus(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		if th.SurfaceAlt == "" || th.FocusBg == "" {
			t.Fatalf("theme %s lacks search box backgrounds", name)
		}
		if got := th.SearchBoxBg(true); got != th.FocusBg {
			t.Fatalf("%s SearchBoxBg(true) = %q, want %q", name, got, th.FocusBg)
		}
		if got := th.SearchBoxBg(false); got != th.SurfaceAlt {
			t.Fatalf("%s SearchBoxBg(false) = %q, want %q", name, got, th.SurfaceAlt)
		}
	}
}
