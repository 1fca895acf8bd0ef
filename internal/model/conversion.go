package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoFrames    = errors.New("response contained no frames")
	ErrBadInterval = errors.New("response frame duration must be positive")
)

// ConversionResult is the backend's rendering of one animated source.
// Duration is the delay between frames in milliseconds.
type ConversionResult struct {
	Frames   []string `json:"frames"`
	Duration int      `json:"duration"`
}

func (r ConversionResult) Interval() time.Duration {
	return time.Duration(r.Duration) * time.Millisecond
}

// Validate reports whether the result can be played back.
func (r ConversionResult) Validate() error {
	if len(r.Frames) == 0 {
		return ErrNoFrames
	}
	if r.Duration <= 0 {
		return fmt.Errorf("%w (got %d)", ErrBadInterval, r.Duration)
	}
	return nil
}

// Size returns the total number of bytes across all frames.
func (r ConversionResult) Size() int {
	n := 0
	for _, f := range r.Frames {
		n += len(f)
	}
	return n
}
