// Package report prints the messages framing a scaffolding run.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

// Clear wipes the terminal when w is attached to one.
func Clear(w io.Writer) {
	if color.NoColor {
		return
	}
	_, _ = fmt.Fprint(w, clearScreen)
}

// Banner is printed before the feature prompt.
func Banner(w io.Writer, version string) {
	_, _ = fmt.Fprintln(w, color.BlueString("TS CLI %s", version))
	_, _ = fmt.Fprintln(w, "Start initializing the project:")
	_, _ = fmt.Fprintln(w)
}

// Completion tells the user the project is ready and how to start it.
func Completion(w io.Writer, project, packageManager string) {
	dollar := color.New(color.FgHiBlack).Sprint("$")
	cmd := color.New(color.FgCyan).SprintFunc()

	_, _ = fmt.Fprintf(w, "Successfully created project %s\n", color.YellowString(project))
	_, _ = fmt.Fprintln(w, "Get started with the following commands:")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%s %s\n", dollar, cmd("cd "+project))
	_, _ = fmt.Fprintf(w, "%s %s\n", dollar, cmd(packageManager+" run dev"))
	_, _ = fmt.Fprintln(w)
}
