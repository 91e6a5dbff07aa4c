// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package audio persists raw PCM speech into uncompressed WAVE files.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/pdiddy/multimodal-researcher/pkg/types"
)

// wavFormatPCM is the WAVE format tag for integer PCM.
const wavFormatPCM = 1

var (
	// ErrFileSystem wraps failures opening, writing, or closing the target file.
	ErrFileSystem = errors.New("file system error")

	// ErrInvalidPCM reports a payload that does not match the requested layout.
	ErrInvalidPCM = errors.New("invalid pcm payload")
)

// WriteWave writes pcm to filename as a PCM WAVE file. An existing file at
// that path is truncated. The payload length must be a whole number of
// frames; nothing is created on disk when it is not.
func WriteWave(filename string, pcm []byte, channels, rate, sampleWidth int) (err error) {
	format := types.AudioFormat{Channels: channels, SampleRate: rate, SampleWidth: sampleWidth}
	if err := format.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPCM, err)
	}
	frame := channels * sampleWidth
	if len(pcm)%frame != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of the %d-byte frame", ErrInvalidPCM, len(pcm), frame)
	}

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", ErrFileSystem, filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing %s: %w", ErrFileSystem, filename, cerr)
		}
	}()

	enc := wav.NewEncoder(f, rate, sampleWidth*8, channels, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           decodeSamples(pcm, sampleWidth),
		SourceBitDepth: sampleWidth * 8,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%w: writing samples to %s: %w", ErrFileSystem, filename, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: finalizing %s: %w", ErrFileSystem, filename, err)
	}
	return nil
}

// Wave is a decoded WAVE file.
type Wave struct {
	Format types.AudioFormat
	PCM    []byte
}

// ReadWave decodes a PCM WAVE file back into its format and raw samples.
func ReadWave(filename string) (*Wave, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrFileSystem, filename, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s is not a valid WAVE file", filename)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filename, err)
	}

	width := int(dec.BitDepth) / 8
	return &Wave{
		Format: types.AudioFormat{
			Channels:    int(dec.NumChans),
			SampleRate:  int(dec.SampleRate),
			SampleWidth: width,
		},
		PCM: encodeSamples(buf.Data, width),
	}, nil
}

// decodeSamples splits little-endian PCM into integer samples. 8-bit WAVE
// samples are unsigned; wider samples are signed.
func decodeSamples(pcm []byte, width int) []int {
	samples := make([]int, 0, len(pcm)/width)
	for i := 0; i+width <= len(pcm); i += width {
		b := pcm[i : i+width]
		switch width {
		case 1:
			samples = append(samples, int(b[0]))
		case 2:
			samples = append(samples, int(int16(binary.LittleEndian.Uint16(b))))
		case 3:
			v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			if v&0x800000 != 0 {
				v |= ^0xffffff
			}
			samples = append(samples, int(v))
		case 4:
			samples = append(samples, int(int32(binary.LittleEndian.Uint32(b))))
		}
	}
	return samples
}

// encodeSamples is the inverse of decodeSamples.
func encodeSamples(samples []int, width int) []byte {
	out := make([]byte, 0, len(samples)*width)
	for _, s := range samples {
		switch width {
		case 1:
			out = append(out, byte(s))
		case 2:
			out = binary.LittleEndian.AppendUint16(out, uint16(int16(s)))
		case 3:
			v := uint32(int32(s))
			out = append(out, byte(v), byte(v>>8), byte(v>>16))
		case 4:
			out = binary.LittleEndian.AppendUint32(out, uint32(int32(s)))
		}
	}
	return out
}

// Artifact describes a file written by WriteWave.
func Artifact(filename string, pcm []byte, format types.AudioFormat) types.AudioArtifact {
	return types.AudioArtifact{
		Filename:    filename,
		Channels:    format.Channels,
		SampleRate:  format.SampleRate,
		SampleWidth: format.SampleWidth,
		Bytes:       len(pcm),
	}
}
