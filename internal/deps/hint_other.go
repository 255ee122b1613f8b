//go:build !darwin

package deps

func installHint() string { return "sudo apt install sox (or your distribution's sox package)" }
