package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"blogcms/service"

	"github.com/stretchr/testify/assert"
)

func captureOutput(f func()) string {
	var buf bytes.Buffer
	oldStdout, oldStderr := os.Stdout, os.Stderr
	r, w, _ := os.Pipe()
	os.Stdout, os.Stderr = w, w

	done := make(chan bool)
	go func() {
		_, _ = io.Copy(&buf, r)
		done <- true
	}()

	f()
	_ = w.Close()
	os.Stdout, os.Stderr = oldStdout, oldStderr
	<-done

	return buf.String()
}

func TestRealMain(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		expectedExit   int
		expectedOutput string
	}{
		{
			name:           "no arguments",
			args:           nil,
			expectedExit:   0,
			expectedOutput: "blogcms [command]",
		},
		{
			name:           "help command",
			args:           []string{"help"},
			expectedExit:   0,
			expectedOutput: "Available Commands:",
		},
		{
			name:           "version command",
			args:           []string{"version"},
			expectedExit:   0,
			expectedOutput: "blogcms version " + service.Version,
		},
		{
			name:           "unknown command",
			args:           []string{"unknown"},
			expectedExit:   1,
			expectedOutput: `Error: unknown command "unknown"`,
		},
		{
			name:           "serve with extra argument",
			args:           []string{"serve", "static"},
			expectedExit:   1,
			expectedOutput: "unknown command \"static\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exitCode int
			output := captureOutput(func() {
				exitCode = RealMain(tt.args)
			})

			assert.Equal(t, tt.expectedExit, exitCode)
			assert.Contains(t, output, tt.expectedOutput)
		})
	}
}

func TestMainExits(t *testing.T) {
	oldArgs, oldExit := os.Args, exit
	defer func() { os.Args, exit = oldArgs, oldExit }()

	var exitCode = -1
	exit = func(code int) { exitCode = code }
	os.Args = []string{"blogcms", "version"}

	captureOutput(main)
	assert.Equal(t, 0, exitCode)
}
