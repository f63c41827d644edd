package theme

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestDefaultStylesRender(t *testing.T) {
	th := Default()

	// Every foreground in the table, including the background-adaptive
	// neutrals, must produce a usable style.
	for name, s := range map[string]string{
		"header":  th.Grid.Header.Render("08:00"),
		"sidebar": th.Grid.Sidebar.Render("Dr. Arben Kodra"),
		"help":    th.Footer.Help.Render("q quit"),
	} {
		if ansi.Strip(s) == "" {
			t.Fatalf("%s style should render its text", name)
		}
	}
}

func TestBlockStylePicksReadableForeground(t *testing.T) {
	r, g, b, _ := BlockStyle("#f5f5a0").GetForeground().RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("a light lane token should get a black foreground, got %d %d %d", r, g, b)
	}

	r, g, b, _ = BlockStyle("#2563eb").GetForeground().RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Fatalf("a dark lane token should get a white foreground, got %d %d %d", r, g, b)
	}
}

func TestBlockStyleFallsBackOnBadToken(t *testing.T) {
	s := BlockStyle("not-a-color").Render("Block")
	if ansi.Strip(s) != "Block" {
		t.Fatalf("a bad token should still render the text, got %q", s)
	}
}
