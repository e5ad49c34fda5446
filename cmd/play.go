package cmd

import (
	"errors"

	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/simon/internal/audio"
	"github.com/iburimskiy/simon/internal/board"
	"github.com/iburimskiy/simon/internal/playback"
	"github.com/iburimskiy/simon/internal/ui"
)

const windowTitle = "Simon"

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Long:  `Open the game window. Click anywhere during the demo to start, Esc or Q quits.`,
	RunE:  runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	err := play()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("game stopped")
		// The window may be the only thing the player sees.
		_ = zenity.Error(err.Error(), zenity.Title(windowTitle))
		return err
	}
	return nil
}

func play() error {
	var (
		player audio.Player = audio.Nop{}
		meter  ui.Meter
	)
	if !cfg.Audio.Mute {
		format, err := cfg.Audio.SampleFormat()
		if err != nil {
			return err
		}
		spk, err := playback.NewSpeaker(playback.Options{
			SampleRate: beep.SampleRate(cfg.Audio.SampleRate),
			BufferSize: cfg.Audio.BufferSize,
			Format:     format,
			Volume:     cfg.Audio.Volume,
		})
		if err != nil {
			return err
		}
		defer spk.Close()
		player, meter = spk, spk
	}

	ctrl := board.NewController(cfg.Timing.Board(), player, sessionSource(cfg.Game.Seed))
	layout := board.NewLayout(cfg.Window.Width, cfg.Window.Height)
	log.Info().
		Int("width", layout.Width).
		Int("height", layout.Height).
		Bool("mute", cfg.Audio.Mute).
		Msg("opening window")

	return ui.Run(ui.NewGame(ctrl, layout, meter), windowTitle)
}
