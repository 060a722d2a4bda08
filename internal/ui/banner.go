// Package ui provides colorized console output for the chat client.
package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// PrintBanner displays the startup banner.
func PrintBanner() {
	cyan := color.New(color.FgCyan, color.Bold)
	magenta := color.New(color.FgMagenta, color.Bold)
	dim := color.New(color.FgHiBlack)

	fmt.Println()
	cyan.Println("╔══════════════════════════════════════════════╗")
	cyan.Print("║  ")
	magenta.Print("HPN CHAT")
	dim.Print("  │  multi-backend AI chat client  ")
	cyan.Println("║")
	cyan.Print("║  ")
	dim.Print("openai · gemini · watson · deepai · clarifai")
	cyan.Println("  ║")
	cyan.Println("╚══════════════════════════════════════════════╝")
	fmt.Println()
}
