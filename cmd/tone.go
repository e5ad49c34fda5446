package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/ncruces/zenity"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/simon/internal/simon"
	"github.com/iburimskiy/simon/internal/tone"
)

var (
	toneOut      string
	toneDuration time.Duration
	toneFormat   string
)

var toneCmd = &cobra.Command{
	Use:   "tone <RED|GREEN|BLUE|YELLOW|LOSE>",
	Short: "Render a panel's cue to a WAV file",
	Long: `Render the square wave cue of a panel to a 16-bit mono WAV file.
Without --out a save dialog asks for the destination.`,
	Args: cobra.ExactArgs(1),
	RunE: runTone,
}

func init() {
	toneCmd.Flags().StringVarP(&toneOut, "out", "o", "", "output WAV file")
	toneCmd.Flags().DurationVarP(&toneDuration, "duration", "d", 350*time.Millisecond, "length of the cue")
	toneCmd.Flags().StringVarP(&toneFormat, "format", "f", "", "sample format: narrow or wide (default from config)")
	rootCmd.AddCommand(toneCmd)
}

func runTone(cmd *cobra.Command, args []string) error {
	name := strings.ToUpper(args[0])
	freq := simon.LoseTone
	if name != "LOSE" {
		c, err := simon.ParseColor(name)
		if err != nil {
			return err
		}
		freq = c.Tone()
	}
	if toneDuration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", toneDuration)
	}

	formatName := toneFormat
	if formatName == "" {
		formatName = cfg.Audio.Format
	}
	format, err := tone.ParseFormat(formatName)
	if err != nil {
		return err
	}

	path := toneOut
	if path == "" {
		path, err = zenity.SelectFileSave(
			zenity.Title("Save Tone"),
			zenity.Filename(strings.ToLower(name)+".wav"),
			zenity.ConfirmOverwrite(),
			zenity.FileFilters{{
				Name:     "WAV audio",
				Patterns: []string{"*.wav"},
			}},
		)
		if err != nil {
			if errors.Is(err, zenity.ErrCanceled) {
				return nil
			}
			return err
		}
	}

	rate := beep.SampleRate(cfg.Audio.SampleRate)
	buf, err := tone.Generate(freq, rate, format)
	if err != nil {
		return err
	}
	cue, err := tone.Cue(buf, tone.Options{
		SampleRate:  rate,
		Volume:      cfg.Audio.Volume,
		Loops:       -1,
		MaxDuration: toneDuration,
	})
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tone.WriteWAV(f, cue, rate); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Info().Str("path", path).Float64("freq", freq).Int("period", buf.Period()).Msg("tone written")
	printf(cmd, "%s: %.2f Hz, %d samples per period, %v\n", path, freq, buf.Period(), toneDuration)
	return nil
}
