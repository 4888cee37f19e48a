package main

import (
	"fmt"
	"os"
)

// ── Unified output helpers ──────────────────────────────────────────
//
// Icon semantics:
//   ✓  success
//   ✗  failure / mismatch
//   ~  informational note
//
// printErr writes to stderr; everything else goes to stdout.

func printSection(title string) {
	fmt.Printf("\n=== %s ===\n", title)
}

func printOK(tag, msg string) {
	if tag == "" {
		fmt.Printf("  ✓  %s\n", msg)
	} else {
		fmt.Printf("  ✓  [%s] %s\n", tag, msg)
	}
}

func printErr(tag, msg string) {
	if tag == "" {
		fmt.Fprintf(os.Stderr, "  ✗  %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "  ✗  [%s] %s\n", tag, msg)
	}
}

func printInfo(msg string) {
	fmt.Printf("  ~  %s\n", msg)
}
