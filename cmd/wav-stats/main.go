// Command wav-stats prints per-channel level statistics for WAV files.
//
// Usage:
//
//	wav-stats input.wav
//	wav-stats -freq input.wav     # Also report the dominant frequency
//	wav-stats -db input.wav       # Levels in dBFS instead of linear
//
// The file is decoded into a channel-major buffer, so every statistic is
// computed over one contiguous channel at a time.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/dsp/fourier"

	channelbuffer "github.com/BillyDM/audio-channel-buffer"
)

const (
	// Analysis window for the dominant-frequency estimate. One FFT over
	// the leading window is enough for a stats tool; a full spectrogram
	// is out of scope.
	fftWindow = 1 << 15

	// Floor reported for digital silence instead of -Inf dBFS.
	silenceFloorDB = -120.0
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	freq := flag.Bool("freq", false, "Estimate the dominant frequency per channel")
	db := flag.Bool("db", false, "Report peak and RMS in dBFS instead of linear")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return fmt.Errorf("expected exactly one input file")
	}
	path := flag.Arg(0)

	buf, sampleRate, err := decode(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d channels, %d frames, %d Hz (%.2fs)\n",
		path, buf.Channels(), buf.Frames(), sampleRate,
		float64(buf.Frames())/float64(sampleRate))

	for ch := range buf.Channels() {
		view, ok := buf.Channel(ch)
		if !ok {
			return fmt.Errorf("channel %d out of bounds", ch)
		}

		peak := channelbuffer.ChannelPeak(view)
		rms := channelbuffer.ChannelRMS(view)

		if *db {
			fmt.Printf("  channel %d: peak %7.2f dBFS, rms %7.2f dBFS", ch, toDB(peak), toDB(rms))
		} else {
			fmt.Printf("  channel %d: peak %.6f, rms %.6f", ch, peak, rms)
		}
		if *freq {
			fmt.Printf(", dominant %.1f Hz", dominantFrequency(view, sampleRate))
		}
		fmt.Println()
	}
	return nil
}

// decode reads a whole WAV file into a channel-major buffer, with samples
// scaled to [-1, 1].
func decode(path string) (*channelbuffer.OwnedBuffer[float64], int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%s: not a valid WAV file", path)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}

	buf, err := channelbuffer.FromIntBuffer(pcm)
	if err != nil {
		return nil, 0, fmt.Errorf("convert %s: %w", path, err)
	}
	return buf, pcm.Format.SampleRate, nil
}

// dominantFrequency returns the frequency of the largest-magnitude FFT bin
// of the channel's leading window, excluding DC.
func dominantFrequency(ch []float64, sampleRate int) float64 {
	n := min(len(ch), fftWindow)
	if n < 2 {
		return 0
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, ch[:n])

	var maxBin int
	var maxMag float64
	for i := 1; i < len(coeffs); i++ {
		if mag := cmplxAbs(coeffs[i]); mag > maxMag {
			maxMag = mag
			maxBin = i
		}
	}
	return fft.Freq(maxBin) * float64(sampleRate)
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

// toDB converts a linear level to dBFS, flooring digital silence.
func toDB(v float64) float64 {
	if v <= 0 {
		return silenceFloorDB
	}
	return max(20*math.Log10(v), silenceFloorDB)
}
