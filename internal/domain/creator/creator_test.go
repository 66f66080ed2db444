package creator

import "testing"

func TestProfileText(t *testing.T) {
	c := Reconstruct(
		"creator_1", "PixelPete", "tech_gaming", "macro", "youtube", "us",
		"daily strategy game reviews", 250_000, 4.2, 800, 4.5, 12,
	)

	want := "PixelPete, tech gaming creator, on youtube, with 250000 followers, daily strategy game reviews"
	if got := c.ProfileText(); got != want {
		t.Errorf("ProfileText():\ngot:  %q\nwant: %q", got, want)
	}
}

func TestProfileText_SkipsEmptyParts(t *testing.T) {
	c := Reconstruct("creator_2", "Ana", "", "", "", "", "", 0, 0, 0, 0, 0)

	if got := c.ProfileText(); got != "Ana" {
		t.Errorf("ProfileText() = %q, want bare name", got)
	}
}
