// SPDX-License-Identifier: EPL-2.0

package audsort

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ik5/audsort/decode"
)

// Strategy names accepted by NewDecoder.
const (
	StrategyNative    = "native"
	StrategyFFmpeg    = "ffmpeg"
	StrategyGStreamer = "gstreamer"
)

var ErrUnknownStrategy = errors.New("unknown decoding strategy")

// Strategies lists the names NewDecoder accepts.
func Strategies() []string {
	return []string{StrategyNative, StrategyFFmpeg, StrategyGStreamer}
}

// NewDecoder returns the decoder for a strategy name, with default settings.
func NewDecoder(strategy string) (decode.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case StrategyNative:
		return decode.NewNative(), nil
	case StrategyFFmpeg:
		return decode.NewFFmpeg(), nil
	case StrategyGStreamer:
		return decode.NewGStreamer(), nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownStrategy, strategy, strings.Join(Strategies(), ", "))
}

// DecodeFile decodes path with the native strategy.
func DecodeFile(ctx context.Context, path string) (*decode.Record, error) {
	return decode.NewNative().Decode(ctx, path)
}
