package skill

const helpText = `
🎙️ **Voxtral Voice Input Skill**

**Commands:**
- ` + "`voice: record my message`" + ` - Record audio and transcribe
- ` + "`voice: quick record`" + ` - Quick 5-second recording
- ` + "`voice: long record`" + ` - Extended 20-second recording
- ` + "`voice: transcribe`" + ` - Show transcription help
- ` + "`voice: help`" + ` - Show this help

**Requirements:**
- sox (brew install sox)
- Voxtral at ~/.openclaw/workspace/voxtral.c/voxtral
- Voxtral model at ~/.openclaw/workspace/voxtral.c/voxtral-model

**Note:** For direct microphone access, you can also run:
` + "```" + `
cd ~/.openclaw/workspace/voxtral.c && ./voxtral -d voxtral-model --from-mic
` + "```" + `
`

// Help returns the static usage document.
func Help() string {
	return helpText
}
