package decoder

import (
	"reflect"
	"testing"
)

func TestBuildArgv(t *testing.T) {
	tests := []struct {
		name string
		args Args
		want []string
	}{
		{
			name: "no input format",
			args: Args{Input: "video.mp4", FPS: 2},
			want: []string{
				"-hwaccel", "auto",
				"-i", "video.mp4",
				"-filter:v", "fps=2",
				"-vsync", "drop",
				"-f", "rawvideo",
				"-pix_fmt", "rgb24",
				"-an", "-y", "pipe:1",
			},
		},
		{
			name: "with input format",
			args: Args{Input: "testsrc=duration=10:size=1280x720:rate=30", InputFormat: "lavfi", FPS: 1},
			want: []string{
				"-hwaccel", "auto",
				"-f", "lavfi",
				"-i", "testsrc=duration=10:size=1280x720:rate=30",
				"-filter:v", "fps=1",
				"-vsync", "drop",
				"-f", "rawvideo",
				"-pix_fmt", "rgb24",
				"-an", "-y", "pipe:1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildArgv(tt.args)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildArgv() = %v, want %v", got, tt.want)
			}
		})
	}
}
