package main

import "github.com/joegoldin/voxtral-voice/cmd"

func main() {
	cmd.Execute()
}
