// Command coach runs interval workout sessions in the terminal. Voice
// cues and music playback are simulated through the log; the live
// countdown renders from the session snapshot feed.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sweatcue/coach/internal/async"
	"github.com/sweatcue/coach/internal/config"
	"github.com/sweatcue/coach/internal/dispatch"
	"github.com/sweatcue/coach/internal/history"
	"github.com/sweatcue/coach/internal/plans"
	"github.com/sweatcue/coach/internal/session"
)

func main() {
	flags := pflag.NewFlagSet("coach", pflag.ExitOnError)
	cfgFile := flags.StringP("config", "c", "", "config file (default "+filepath.Join(config.ConfigDir(), "config.yaml")+")")
	planName := flags.StringP("plan", "p", "", "name of the plan to run (see --list-plans)")
	planFile := flags.String("plan-file", "", "path to a workout plan YAML file")
	plansDir := flags.String("plans-dir", "", "directory of extra plan YAML files")
	listPlans := flags.Bool("list-plans", false, "print the available plans and exit")
	historyN := flags.Int("history", 0, "print the most recent session summaries and exit")
	autoReady := flags.Bool("auto-ready", false, "start each exercise automatically instead of waiting for Enter")
	flags.Int("tick-ms", 0, "countdown tick interval in milliseconds (overrides config)")
	flags.String("intensity", "", "starting intensity level (overrides config)")
	flags.Bool("voice", true, "enable the coaching voice")
	flags.Bool("music", true, "enable background music")
	flags.Bool("log-stderr", false, "mirror the log to stderr")
	flags.Lookup("history").NoOptDefVal = "10"
	_ = flags.Parse(os.Args[1:])

	must("bind flags", viper.BindPFlag("session.tick_interval_ms", flags.Lookup("tick-ms")))
	must("bind flags", viper.BindPFlag("session.initial_intensity", flags.Lookup("intensity")))
	must("bind flags", viper.BindPFlag("voice.enabled", flags.Lookup("voice")))
	must("bind flags", viper.BindPFlag("music.enabled", flags.Lookup("music")))
	must("bind flags", viper.BindPFlag("logging.stderr", flags.Lookup("log-stderr")))

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logWriter := &lumberjack.Logger{
		Filename:   cfg.LogFile(),
		MaxSize:    cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	}
	defer logWriter.Close()

	var out io.Writer = logWriter
	if cfg.Logging.Stderr {
		out = io.MultiWriter(logWriter, os.Stderr)
	}
	logger := log.New(out, "", log.LstdFlags)

	available := availablePlans(*plansDir)
	if *listPlans {
		printPlans(available)
		return
	}

	if *historyN > 0 {
		store, err := history.Open(cfg.HistoryDir())
		must("open history store", err)
		defer store.Close()
		must("read history", printHistory(store, *historyN))
		return
	}

	plan, err := resolvePlan(*planName, *planFile, available)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "run with --list-plans to see what is available")
		os.Exit(2)
	}

	store, err := history.Open(cfg.HistoryDir())
	must("open history store", err)
	defer store.Close()

	var voice session.VoiceDispatch
	if cfg.Voice.Enabled {
		voice = dispatch.NewConsoleSpeech(logger, cfg.Voice.RateCharsPerSec)
	} else {
		voice = dispatch.NewMutedVoice(logger)
	}
	player := dispatch.NewConsolePlayer(logger, cfg.Music.Enabled)

	mgr := session.NewManager(voice, player, logger, session.Options{
		TickInterval:           cfg.Session.TickInterval(),
		DescribeTimeoutSeconds: cfg.Session.DescribeTimeoutSeconds,
		InitialIntensity:       cfg.Session.InitialIntensityLevel(),
		DuckLevel:              cfg.Voice.DuckLevel,
		Music:                  cfg.Music.Track(),
		Recorder:               store,
	})
	defer mgr.Shutdown()

	snapCh := make(chan session.Snapshot, 64)
	cancelSnaps := mgr.ListenSnapshots(snapCh)
	defer cancelSnaps()

	summaryCh := make(chan session.SessionSummary, 1)
	cancelSummaries := mgr.ListenSummaries(summaryCh)
	defer cancelSummaries()

	if *autoReady {
		readyDelay := 2 * cfg.Session.TickInterval()
		cancelReady := mgr.OnTransition(func(tr session.Transition) {
			if tr.To == session.PhaseAwaitingReady {
				time.AfterFunc(readyDelay, mgr.BeginExercise)
			}
		})
		defer cancelReady()
	}
	async.Go(logger, "key-loop", func() { keyLoop(mgr) })

	stopRender := make(chan struct{})
	renderDone := make(chan struct{})
	async.Go(logger, "render-loop", func() {
		defer close(renderDone)
		renderLoop(snapCh, stopRender, *autoReady)
	})

	fmt.Printf("Plan: %s (%s, %d exercises, ~%d min)\n",
		plan.Name, plan.Difficulty, len(plan.Exercises), (plan.TotalSeconds()+59)/60)
	logger.Printf("coach: running plan %q, tick %s", plan.Name, cfg.Session.TickInterval())

	if err := mgr.Start(plan); err != nil {
		close(stopRender)
		<-renderDone
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	var summary session.SessionSummary
waitLoop:
	for {
		select {
		case sig := <-sigCh:
			logger.Printf("coach: received %s, stopping session", sig)
			mgr.Stop()
		case summary = <-summaryCh:
			break waitLoop
		}
	}

	close(stopRender)
	<-renderDone
	printSummary(summary)
}

// availablePlans merges the built-in catalog with any plan files found in
// dir. Files that fail to load are reported and skipped.
func availablePlans(dir string) []session.WorkoutPlan {
	available := make([]session.WorkoutPlan, 0, len(plans.AllPlans))
	available = append(available, plans.AllPlans...)
	if dir == "" {
		return available
	}
	loaded, errs := plans.LoadPlanDir(dir)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "skipping plan: %v\n", err)
	}
	for _, p := range loaded {
		available = append(available, *p)
	}
	return available
}

func resolvePlan(name, file string, available []session.WorkoutPlan) (*session.WorkoutPlan, error) {
	if file != "" {
		return plans.LoadPlanFile(file)
	}
	if name == "" {
		return nil, fmt.Errorf("no plan selected: use --plan <name> or --plan-file <path>")
	}
	for i := range available {
		if strings.EqualFold(available[i].Name, name) {
			plan := available[i]
			return &plan, nil
		}
	}
	return nil, fmt.Errorf("unknown plan %q", name)
}

func printPlans(available []session.WorkoutPlan) {
	fmt.Println("Available plans:")
	for _, p := range available {
		fmt.Printf("  %-24s %-12s %2d exercises, ~%d min\n",
			p.Name, p.Difficulty, len(p.Exercises), (p.TotalSeconds()+59)/60)
	}
}

func printHistory(store *history.Store, limit int) error {
	summaries, err := store.Recent(limit)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}
	for _, s := range summaries {
		marker := ""
		if s.Aborted {
			marker = "  (stopped early)"
		}
		fmt.Printf("%s  %-24s %d/%d exercises  %-8s %s%s\n",
			s.CompletedAt.Format("2006-01-02 15:04"), s.PlanName,
			s.ExercisesCompleted, s.ExercisesTotal,
			s.Duration.Round(time.Second), s.FinalIntensity, marker)
	}
	return nil
}

func printSummary(s session.SessionSummary) {
	headline := "Workout complete!"
	if s.Aborted {
		headline = "Workout stopped."
	}
	fmt.Println()
	fmt.Println(headline)
	fmt.Printf("  Plan:       %s\n", s.PlanName)
	fmt.Printf("  Exercises:  %d of %d\n", s.ExercisesCompleted, s.ExercisesTotal)
	fmt.Printf("  Duration:   %s\n", s.Duration.Round(time.Second))
	fmt.Printf("  Intensity:  %s\n", s.FinalIntensity)
}

// keyLoop maps plain stdin lines onto session controls. Enter signals
// ready at the exercise gate; p and r pause and resume, e and h nudge
// the intensity easier and harder, q stops the session.
func keyLoop(mgr *session.Manager) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
		case "":
			mgr.BeginExercise()
		case "p":
			mgr.Pause()
		case "r":
			mgr.Resume()
		case "e":
			mgr.AdjustIntensity(true)
		case "h":
			mgr.AdjustIntensity(false)
		case "q":
			mgr.Stop()
		}
	}
}

// renderLoop draws the live countdown from the snapshot feed. Counting
// phases redraw a single line in place; phase changes print a banner.
func renderLoop(snapCh <-chan session.Snapshot, stop <-chan struct{}, autoReady bool) {
	var last session.Snapshot
	lineOpen := false
	for {
		select {
		case <-stop:
			if lineOpen {
				fmt.Println()
			}
			return
		case snap := <-snapCh:
			if snap.Phase != last.Phase || snap.ExerciseIndex != last.ExerciseIndex {
				if lineOpen {
					fmt.Println()
					lineOpen = false
				}
				if b := banner(snap, autoReady); b != "" {
					fmt.Println(b)
				}
			}
			if snap.Phase.IsCounting() {
				fmt.Printf("\r  %-20s %3ds left ", countdownLabel(snap), snap.RemainingSeconds)
				lineOpen = true
			}
			last = snap
		}
	}
}

func banner(snap session.Snapshot, autoReady bool) string {
	switch snap.Phase {
	case session.PhaseDescribing:
		return fmt.Sprintf("Starting %q at %s intensity", snap.PlanName, snap.Intensity)
	case session.PhaseAwaitingReady:
		prompt := "press Enter to begin"
		if autoReady {
			prompt = "starting automatically"
		}
		return fmt.Sprintf("Up next: %s (%d of %d), %s",
			snap.ExerciseName, snap.ExerciseIndex+1, snap.ExerciseTotal, prompt)
	case session.PhaseExercising:
		return "GO: " + snap.ExerciseName
	case session.PhaseResting:
		return "Rest"
	case session.PhasePaused:
		return "Paused (press r to resume)"
	default:
		return ""
	}
}

func countdownLabel(snap session.Snapshot) string {
	switch snap.Phase {
	case session.PhaseDescribing:
		return "intro"
	case session.PhaseResting:
		return "rest"
	default:
		return snap.ExerciseName
	}
}

func must(action string, err error) {
	if err != nil {
		panic("failed to " + action + ": " + err.Error())
	}
}
