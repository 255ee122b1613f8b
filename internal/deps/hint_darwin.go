package deps

func installHint() string { return "brew install sox" }
