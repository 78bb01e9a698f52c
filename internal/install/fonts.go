package install

import (
	"fmt"
	"io"

	"github.com/thoreinstein/nvsetup/internal/platform"
)

// NerdFontsURL lists the patched fonts most Neovim configurations expect.
const NerdFontsURL = "https://www.nerdfonts.com/font-downloads"

// PrintFontInstructions recommends installing a Nerd Font. It only prints;
// fonts are a terminal setting nvsetup cannot change.
func PrintFontInstructions(w io.Writer, info *platform.Info) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Icons in the configuration need a Nerd Font in your terminal.")
	if info != nil && info.IsMacOS() {
		fmt.Fprintln(w, "Install one with Homebrew:")
		fmt.Fprintln(w, "    brew install --cask font-jetbrains-mono-nerd-font")
	} else {
		fmt.Fprintf(w, "Download one from %s\n", NerdFontsURL)
		fmt.Fprintln(w, "and unpack it into ~/.local/share/fonts, then run: fc-cache -f")
	}
	fmt.Fprintln(w, "Then select it in your terminal's font settings.")
}
