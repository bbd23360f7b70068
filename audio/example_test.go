// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"context"
	"fmt"

	"github.com/ik5/audsort/audio"
	"github.com/ik5/audsort/internal/audiotest"
)

func ExampleResampleToMono16() {
	// one second of stereo 48 kHz audio
	src := audiotest.NewSineSource(48000, 2, 48000, 440)
	defer src.Close()

	pcm, err := audio.ResampleToMono16(context.Background(), src, 44100, 0)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(len(pcm))
	// Output: 44100
}

func ExampleDetect() {
	d := audio.Detect([]byte("fLaC\x00\x00\x00\x22"), "track.bin")
	fmt.Println(d.Format, d.Magic)
	// Output: flac true
}
