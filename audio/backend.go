package audio

import (
	"fmt"
	"os/exec"
)

// backend describes one external player able to consume raw s16le stereo
// frames on stdin.
type backend struct {
	name string
	bin  string
	args func(rate int) []string
}

// Probe order favors the desktop sound servers before raw ALSA and sox.
var backends = []backend{
	{
		name: "pulseaudio",
		bin:  "pacat",
		args: func(rate int) []string {
			return []string{"--format=s16le", fmt.Sprintf("--rate=%d", rate), "--channels=2", "--latency-msec=60"}
		},
	},
	{
		name: "pipewire",
		bin:  "pw-cat",
		args: func(rate int) []string {
			return []string{"--playback", "-", "--format", "s16", "--rate", fmt.Sprintf("%d", rate), "--channels", "2"}
		},
	},
	{
		name: "alsa",
		bin:  "aplay",
		args: func(rate int) []string {
			return []string{"-q", "-f", "S16_LE", "-r", fmt.Sprintf("%d", rate), "-c", "2", "-t", "raw", "-"}
		},
	},
	{
		name: "sox",
		bin:  "play",
		args: func(rate int) []string {
			return []string{"-q", "-t", "raw", "-e", "signed", "-b", "16", "-r", fmt.Sprintf("%d", rate), "-c", "2", "-"}
		},
	},
}

// detectBackend finds the first playable backend on PATH. ok is false when
// the host has none, in which case the sink stays silent.
func detectBackend(rate int) (cmd *exec.Cmd, name string, ok bool) {
	for _, b := range backends {
		path, err := exec.LookPath(b.bin)
		if err != nil {
			continue
		}
		return exec.Command(path, b.args(rate)...), b.name, true
	}
	return nil, "", false
}
