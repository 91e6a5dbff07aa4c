// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/multimodal-researcher/internal/audio"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.wav>",
	Short: "Print the format and duration of a generated WAVE file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := audio.ReadWave(args[0])
		if err != nil {
			return err
		}
		f := w.Format
		if err := f.Validate(); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		frames := len(w.PCM) / (f.Channels * f.SampleWidth)
		duration := time.Duration(frames) * time.Second / time.Duration(f.SampleRate)

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d ch, %d Hz, %d-bit, %d bytes, %s\n",
			args[0], f.Channels, f.SampleRate, f.SampleWidth*8, len(w.PCM), duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
