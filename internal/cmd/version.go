package cmd

// Version is the release version. Overridable at build time:
//
//	go build -ldflags "-X github.com/snipsync/snipsync/internal/cmd.Version=v0.5.0"
var Version = "0.4.0"
