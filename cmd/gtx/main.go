package main

import (
	"general-transcriber/cmd/gtx/cmd"
)

// @title           General Transcriber API
// @version         1.0
// @description     Upload audio or video, transcribe it with Whisper and label speakers.
// @BasePath        /api/v1
func main() {
	cmd.Execute()
}
