// Package headless drives a single screenshot from the command line: it
// parses the screenshot arguments, opens the park in a headless engine and
// renders one image to the requested output path.
package headless

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/parkshot/internal/capture"
	"github.com/vovakirdan/parkshot/internal/core"
	"github.com/vovakirdan/parkshot/internal/engine"
	"github.com/vovakirdan/parkshot/internal/iso"
)

// ErrUsage is returned for any malformed argument list.
var ErrUsage = errors.New("headless: invalid screenshot arguments")

// Usage is printed when the arguments cannot be parsed.
const Usage = `Usage: parkshot screenshot <file> <output_image> <width> <height> [<x> <y> <zoom> <rotation>]
Usage: parkshot screenshot <file> <output_image> giant <zoom> <rotation>
`

// Params is a parsed screenshot request.
type Params struct {
	Input  string
	Output string
	Shot   capture.Shot
}

// ParseArgs parses the positional screenshot arguments, input and output
// paths included. Only 4, 8, or 5 arguments with "giant" third are valid.
// An x or y starting with 'c' selects the map centre. Rotation is reduced
// to its low two bits.
func ParseArgs(args []string) (Params, error) {
	giant := len(args) == 5 && strings.EqualFold(args[2], "giant")
	if len(args) != 4 && len(args) != 8 && !giant {
		return Params{}, fmt.Errorf("%w: got %d arguments", ErrUsage, len(args))
	}

	p := Params{Input: args[0], Output: args[1]}
	if giant {
		zoom, rot, err := parseZoomRotation(args[3], args[4])
		if err != nil {
			return Params{}, err
		}
		p.Shot = capture.Shot{
			Custom:   true,
			CentreX:  true,
			CentreY:  true,
			Zoom:     zoom,
			Rotation: rot,
		}
		return p, nil
	}

	var err error
	if p.Shot.Width, err = parseSize("width", args[2]); err != nil {
		return Params{}, err
	}
	if p.Shot.Height, err = parseSize("height", args[3]); err != nil {
		return Params{}, err
	}
	if len(args) == 4 {
		return p, nil
	}

	p.Shot.Custom = true
	if p.Shot.X, p.Shot.CentreX, err = parseCoord("x", args[4]); err != nil {
		return Params{}, err
	}
	if p.Shot.Y, p.Shot.CentreY, err = parseCoord("y", args[5]); err != nil {
		return Params{}, err
	}
	if p.Shot.Zoom, p.Shot.Rotation, err = parseZoomRotation(args[6], args[7]); err != nil {
		return Params{}, err
	}
	return p, nil
}

func parseInt(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrUsage, name, s)
	}
	return v, nil
}

func parseSize(name, s string) (int, error) {
	v, err := parseInt(name, s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %s %d is negative", ErrUsage, name, v)
	}
	return v, nil
}

func parseCoord(name, s string) (v int, centre bool, err error) {
	if strings.HasPrefix(s, "c") {
		return 0, true, nil
	}
	v, err = parseInt(name, s)
	return v, false, err
}

func parseZoomRotation(zs, rs string) (int, iso.Rotation, error) {
	zoom, err := parseInt("zoom", zs)
	if err != nil {
		return 0, 0, err
	}
	if zoom < 0 || zoom > core.MaxZoom {
		return 0, 0, fmt.Errorf("%w: zoom %d out of range 0..%d", ErrUsage, zoom, core.MaxZoom)
	}
	rot, err := parseInt("rotation", rs)
	if err != nil {
		return 0, 0, err
	}
	return zoom, iso.MaskRotation(rot), nil
}

// Run opens p.Input, takes exactly one headless capture into p.Output and
// closes the engine again, whatever the outcome.
func Run(p Params, opts capture.Options) (capture.Result, error) {
	var res capture.Result
	err := engine.With(p.Input, func(e engine.Engine) error {
		var err error
		res, err = capture.New(engine.CaptureContext(e), opts).Headless(p.Shot, p.Output)
		return err
	})
	return res, err
}
