package main

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type cliOptions struct {
	configPath string
	dataDir    string
	store      string
	midiIn     string
	seed       int64
}

// loadCommandConfig layers the flags the user actually set on top of the
// config file and environment. --data-dir is applied first so the config
// file is looked up in that folder.
func (o *cliOptions) loadCommandConfig(cmd *cobra.Command) (config, error) {
	flags := cmd.Flags()
	dataDir := ""
	if flags.Changed("data-dir") {
		dataDir = o.dataDir
	}

	cfg, err := loadConfig(o.configPath, dataDir)
	if err != nil {
		return cfg, err
	}

	if flags.Changed("store") {
		cfg.Store = o.store
	}
	if flags.Changed("midi-in") {
		cfg.MidiIn = o.midiIn
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	return cfg, cfg.validate()
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "piano-pals",
		Short: "A piano for kids in your terminal",
		Long: `piano-pals - lessons, songs and games on a terminal piano.

Play with the keyboard (a w s e d f t g y h u j k o, or 1-8) or plug in a
MIDI keyboard with --midi-in auto.

Progress is stored in the data folder (~/Piano Pals by default, or
$` + dataPathEnvVar + `).`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default <data dir>/"+configFileName+")")
	pf.StringVar(&opts.dataDir, "data-dir", "", "folder for progress and config")
	pf.StringVar(&opts.store, "store", storeSqlite, "progress store: sqlite, badger or memory")

	playFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&opts.midiIn, "midi-in", "", "MIDI input port name, or auto")
		cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed for the games (0 uses the clock)")
	}
	playFlags(rootCmd)

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Start the piano (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts)
		},
	}
	playFlags(playCmd)

	rootCmd.AddCommand(
		playCmd,
		newProgressCmd(opts),
		newResetCmd(opts),
		newUnlockCmd(opts),
		newMelodiesCmd(),
		newRenderCmd(),
		newExportCmd(),
		newMidiPortsCmd(),
	)
	return rootCmd
}

func runPlay(cmd *cobra.Command, opts *cliOptions) error {
	cfg, err := opts.loadCommandConfig(cmd)
	if err != nil {
		return err
	}

	f, err := tea.LogToFile(cfg.LogFile, "debug")
	if err != nil {
		return errors.Wrap(err, "opening log file")
	}
	defer f.Close()
	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info("Starting piano pals", "store", cfg.Store, "seed", seed)

	openStore := func() (progressStore, error) {
		store, err := openProgressStore(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	spkr := newSpeaker(defaultSettingsRecord())
	model := initialMainModel(openStore, spkr, rand.New(rand.NewSource(seed)), time.Now)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if cfg.MidiIn != "" {
		mi, err := openMidiInput(cfg.MidiIn, p.Send)
		if err != nil {
			// the computer keyboard still works
			log.Error("Failed to open MIDI input", "device", cfg.MidiIn, "err", err)
		} else {
			defer mi.close()
		}
	}

	_, err = p.Run()
	return err
}

// withStore opens the configured store for one CLI command
func withStore(cmd *cobra.Command, opts *cliOptions, fn func(store progressStore) error) error {
	cfg, err := opts.loadCommandConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openProgressStore(cfg)
	if err != nil {
		return err
	}
	defer store.close()
	return fn(store)
}

func newProgressCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show stars, level, best scores and recent games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(store progressStore) error {
				out := cmd.OutOrStdout()
				p := store.getProgress()

				sl := statsList{}
				sl.add("Level", fmt.Sprintf("%d", p.CurrentLevel))
				sl.add("Total stars", fmt.Sprintf("%d", p.TotalStars))
				sl.add("Lessons done", fmt.Sprintf("%d/%d", len(p.CompletedLessons), len(lessons)))
				sl.add("Unlocked songs", fmt.Sprintf("%d", len(p.UnlockedSongs)))
				sl.add("Play time", formatPlayTime(p.PlayTimeMinutes))
				sl.add("Last played", p.LastPlayDate)
				for _, g := range games {
					sl.add(g.title+" best", fmt.Sprintf("%d", p.bestScore(g.id)))
				}
				fmt.Fprint(out, sl.View())

				results, err := store.verifiedResults("", recentResultsLimit)
				if err != nil {
					return err
				}
				if len(results) > 0 {
					fmt.Fprintln(out, "\nRecent games:")
				}
				for _, r := range results {
					played := time.Unix(r.Timestamp, 0).Format("2006-01-02 15:04")
					fmt.Fprintf(out, "  %s  %-13s %5d  %s\n", played, gameTitle(r.GameID), r.Score, smallStarString(r.Stars))
				}
				return nil
			})
		},
	}
}

func newResetCmd(opts *cliOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to reset without --yes")
			}
			return withStore(cmd, opts, func(store progressStore) error {
				if err := store.resetProgress(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Progress reset")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	return cmd
}

func newUnlockCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock SONG",
		Short: "Unlock a premium song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			songID := args[0]
			found := false
			for _, s := range songLibrary {
				if string(s.melody) == songID {
					found = true
					break
				}
			}
			if !found {
				return errors.New("unknown song " + songID)
			}
			return withStore(cmd, opts, func(store progressStore) error {
				if err := store.unlockSong(songID); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Unlocked", songID)
				return nil
			})
		},
	}
}

func newMelodiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "melodies",
		Short: "List the melodies that can be rendered or exported",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			sl := statsList{}
			for _, id := range sortedMelodyIDs() {
				m, _ := getMelody(id)
				sl.add(string(id), fmt.Sprintf("%s (%d %s)", m.name, len(m.notes), pluralizeWithS(len(m.notes), "note")))
			}
			fmt.Fprint(cmd.OutOrStdout(), sl.View())
		},
	}
}

func melodyArg(id string) (melody, error) {
	m, ok := getMelody(melodyID(id))
	if !ok {
		return melody{}, errors.New("unknown melody " + id + " (see piano-pals melodies)")
	}
	return m, nil
}

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render MELODY OUT.wav",
		Short: "Render a melody to a WAV file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := melodyArg(args[0])
			if err != nil {
				return err
			}
			if err := renderMelodyWavFile(args[1], m); err != nil {
				return err
			}
			log.Info("Rendered melody", "melody", m.id, "file", args[1])
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export MELODY OUT.mid",
		Short: "Export a melody as a standard MIDI file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := melodyArg(args[0])
			if err != nil {
				return err
			}
			if err := exportMelodyMidiFile(args[1], m); err != nil {
				return err
			}
			log.Info("Exported melody", "melody", m.id, "file", args[1])
			return nil
		},
	}
}

func newMidiPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "midi-ports",
		Short: "List MIDI input ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := listMidiInputs()
			if err != nil {
				return errors.Wrap(err, "listing MIDI inputs")
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No MIDI inputs found")
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
