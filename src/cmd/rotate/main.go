package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"face-overlay/src/rotation"
	"face-overlay/src/skin"
)

const (
	maxFileSizeMB = 10
	maxFileSize   = maxFileSizeMB * 1024 * 1024
)

// rotateOptions renders one overlay frame offline: the skin turned toward a
// cursor placed (dx,dy) pixels from the sprite center.
type rotateOptions struct {
	filePath   string
	outPath    string
	dx, dy     int
	jsonOutput bool
	verbose    bool
}

func main() {
	if err := runWithArgs(os.Args, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runWithArgs(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		args = []string{"face-rotate"}
	}

	opts := &rotateOptions{}
	cmd := newRootCmd(opts, stdin, stdout)
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCmd(opts *rotateOptions, stdin io.Reader, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "face-rotate",
		Short:         "Render the overlay frame for a cursor offset",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithOptions(*opts, stdin, stdout)
		},
	}

	cmd.Flags().StringVar(&opts.filePath, "file", "", "Path to skin image (use '-' for stdin)")
	cmd.Flags().StringVar(&opts.outPath, "out", "", "Write the rotated frame as PNG to this path")
	cmd.Flags().IntVar(&opts.dx, "dx", 0, "Cursor X offset from the sprite center")
	cmd.Flags().IntVar(&opts.dy, "dy", -1, "Cursor Y offset from the sprite center (negative is up)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output frame details as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output to stderr")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// FrameResult describes one rendered frame.
type FrameResult struct {
	Source   string  `json:"source"`
	Angle    float64 `json:"angle_degrees"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Duration float64 `json:"duration_seconds"`
	Output   string  `json:"output,omitempty"`
}

func runWithOptions(opts rotateOptions, stdin io.Reader, stdout io.Writer) error {
	// Configure logging BEFORE any other operations.
	if !opts.verbose {
		log.SetOutput(io.Discard)
	} else {
		log.SetOutput(os.Stderr)
	}

	data, err := readInput(opts.filePath, stdin)
	if err != nil {
		return err
	}
	base, err := skin.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	log.Printf("Skin %s decoded: %dx%d", opts.filePath, base.Bounds().Dx(), base.Bounds().Dy())

	angle := rotation.Angle(image.Point{}, image.Pt(opts.dx, opts.dy))
	start := time.Now()
	frame, err := rotation.Rotate(base, angle)
	if err != nil {
		return fmt.Errorf("rotate failed: %w", err)
	}
	elapsed := time.Since(start)
	log.Printf("Rotated by %.2f° in %v", angle, elapsed)

	if opts.outPath != "" {
		if err := writePNG(opts.outPath, frame); err != nil {
			return err
		}
	}

	result := FrameResult{
		Source:   opts.filePath,
		Angle:    angle,
		Width:    frame.Bounds().Dx(),
		Height:   frame.Bounds().Dy(),
		Duration: elapsed.Seconds(),
		Output:   opts.outPath,
	}
	if opts.jsonOutput {
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("failed to encode JSON output: %w", err)
		}
		return nil
	}
	fmt.Fprintf(stdout, "angle=%.2f size=%dx%d\n", result.Angle, result.Width, result.Height)
	return nil
}

func readInput(filePath string, stdin io.Reader) ([]byte, error) {
	var data []byte
	var err error
	if filePath == "-" {
		data, err = io.ReadAll(io.LimitReader(stdin, maxFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("input file is empty")
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("input file exceeds maximum size of %d MB", maxFileSizeMB)
	}
	return data, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}
