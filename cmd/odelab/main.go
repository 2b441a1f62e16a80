package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/odelab/odelab/internal/analysis"
	"github.com/odelab/odelab/internal/compute"
	"github.com/odelab/odelab/internal/config"
	"github.com/odelab/odelab/internal/experiment"
	"github.com/odelab/odelab/internal/export"
	"github.com/odelab/odelab/internal/report"
	"github.com/odelab/odelab/internal/tui"
	"github.com/odelab/odelab/ode"
	"github.com/odelab/odelab/problems"
)

var (
	dataDir    string
	methodName string
	absTol     float64
	relTol     float64
	initialH   float64
	fixedH     float64
	maxSteps   int
	denseDx    float64
	x0Flag     float64
	xfFlag     float64
	y0Flag     string
	configFile string
	preset     string
	verbose    bool

	plotPath   string
	svgPath    string
	exportPath string

	xAxis     int
	yAxis     int
	component int

	tolsFlag  string
	stepsFlag string

	lyapDx   float64
	lyapTime float64
	lyapD0   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odelab",
		Short: "adaptive ode integration lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand drops into the interactive picker.
			return tui.Run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odelab", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log solver steps")

	runCmd := &cobra.Command{
		Use:   "run [problem]",
		Short: "integrate a problem and store the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runProblem,
	}
	addSolverFlags(runCmd)
	runCmd.Flags().Float64Var(&x0Flag, "x0", 0, "integration start")
	runCmd.Flags().Float64Var(&xfFlag, "xf", 0, "integration end")
	runCmd.Flags().StringVar(&y0Flag, "y0", "", "initial state, comma separated")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&plotPath, "plot", "", "write a trajectory plot (.png, .svg, .pdf)")
	runCmd.Flags().StringVar(&exportPath, "export", "", "write the trajectory to a file (.csv or .json)")

	liveCmd := &cobra.Command{
		Use:   "live [problem]",
		Short: "integrate with a live phase portrait",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSolverFlags(liveCmd)
	liveCmd.Flags().Float64Var(&xfFlag, "xf", 0, "integration end")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list integration methods",
		RunE:  listMethods,
	}

	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "list built-in problems",
		RunE:  listProblems,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [problem]",
		Short: "list available presets for a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for problem: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotPath, "out", "", "write an image instead of drawing in the terminal")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for the x axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for the y axis")
	phaseCmd.Flags().StringVar(&plotPath, "out", "", "write an image instead of drawing in the terminal")
	phaseCmd.Flags().StringVar(&svgPath, "svg", "", "write an svg path rendering")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trajectory to csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run trajectory to json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunJSON,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [problem]",
		Short: "sweep a tolerance ladder",
		Args:  cobra.ExactArgs(1),
		RunE:  benchProblem,
	}
	benchCmd.Flags().StringVar(&methodName, "method", "dopri5", "integration method")
	benchCmd.Flags().StringVar(&tolsFlag, "tols", "1e-4,1e-6,1e-8,1e-10", "tolerances, comma separated")
	benchCmd.Flags().Float64Var(&xfFlag, "xf", 0, "integration end")

	compareCmd := &cobra.Command{
		Use:   "compare [problem] [method...]",
		Short: "compare methods on the same problem",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareMethods,
	}
	compareCmd.Flags().Float64Var(&absTol, "abs-tol", 1e-6, "absolute tolerance")
	compareCmd.Flags().Float64Var(&relTol, "rel-tol", 1e-6, "relative tolerance")
	compareCmd.Flags().Float64Var(&xfFlag, "xf", 0, "integration end")

	orderCmd := &cobra.Command{
		Use:   "order [problem]",
		Short: "measure the convergence order of a method",
		Args:  cobra.ExactArgs(1),
		RunE:  measureOrder,
	}
	orderCmd.Flags().StringVar(&methodName, "method", "rk4", "integration method")
	orderCmd.Flags().StringVar(&stepsFlag, "steps", "0.2,0.1,0.05,0.025", "fixed step sizes, comma separated")
	orderCmd.Flags().StringVar(&plotPath, "plot", "", "write a log-log convergence plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&component, "component", 0, "state component to analyze")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [problem]",
		Short: "estimate the largest lyapunov exponent",
		Args:  cobra.ExactArgs(1),
		RunE:  estimateLyapunov,
	}
	lyapunovCmd.Flags().Float64Var(&lyapDx, "dx", 0.01, "renormalization interval")
	lyapunovCmd.Flags().Float64Var(&lyapTime, "time", 50, "integration time")
	lyapunovCmd.Flags().Float64Var(&lyapD0, "d0", 1e-8, "initial separation")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scenario file step by step",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(runCmd, liveCmd, methodsCmd, problemsCmd, presetsCmd,
		listCmd, plotCmd, phaseCmd, exportCmd, exportCSVCmd, exportJSONCmd,
		benchCmd, compareCmd, orderCmd, analyzeCmd, lyapunovCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSolverFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&methodName, "method", config.DefaultMethod, "integration method")
	cmd.Flags().Float64Var(&absTol, "abs-tol", config.DefaultAbsTol, "absolute tolerance")
	cmd.Flags().Float64Var(&relTol, "rel-tol", config.DefaultRelTol, "relative tolerance")
	cmd.Flags().Float64Var(&initialH, "h0", 0, "initial step size (0 = automatic)")
	cmd.Flags().Float64Var(&fixedH, "fixed-h", 0, "fixed step size (disables adaptivity)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", config.DefaultMaxSteps, "step limit")
	cmd.Flags().Float64Var(&denseDx, "dense-dx", 0, "dense output spacing (0 = accepted steps only)")
}

func newLogger() log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}

// resolveConfig layers defaults, preset, config file and changed CLI flags,
// in that order.
func resolveConfig(cmd *cobra.Command, problem string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(problem, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(problem))
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.Problem = problem
	if cmd.Flags().Changed("method") {
		cfg.Method = methodName
	}
	if cmd.Flags().Changed("abs-tol") {
		cfg.AbsTol = absTol
	}
	if cmd.Flags().Changed("rel-tol") {
		cfg.RelTol = relTol
	}
	if cmd.Flags().Changed("h0") {
		cfg.InitialH = initialH
	}
	if cmd.Flags().Changed("fixed-h") {
		cfg.FixedH = fixedH
	}
	if cmd.Flags().Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}
	if cmd.Flags().Changed("dense-dx") {
		cfg.DenseDx = denseDx
	}
	if cmd.Flags().Changed("x0") {
		cfg.Span.X0 = x0Flag
	}
	if cmd.Flags().Changed("xf") {
		cfg.Span.Xf = xfFlag
	}
	if cmd.Flags().Changed("y0") {
		y0, err := parseFloats(y0Flag)
		if err != nil {
			return nil, fmt.Errorf("bad --y0: %w", err)
		}
		cfg.Y0 = y0
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

type runSpec struct {
	prob   problems.Problem
	par    ode.Params
	x0, xf float64
	y0     []float64
}

func resolveRun(cfg *config.Config) (runSpec, error) {
	var rs runSpec

	prob, err := problems.Get(cfg.Problem)
	if err != nil {
		return rs, err
	}
	par, err := cfg.Params()
	if err != nil {
		return rs, err
	}

	rs.prob = prob
	rs.par = par
	rs.x0, rs.xf = prob.X0, prob.Xf
	if cfg.HasSpan() {
		rs.x0, rs.xf = cfg.Span.X0, cfg.Span.Xf
	}
	rs.y0 = prob.Y0
	if len(cfg.Y0) > 0 {
		if len(cfg.Y0) != prob.System.Ndim {
			return rs, fmt.Errorf("y0 override has %d components, problem %s wants %d",
				len(cfg.Y0), prob.Name, prob.System.Ndim)
		}
		rs.y0 = cfg.Y0
	}
	return rs, nil
}

func outputDir(cfg *config.Config) string {
	if cfg.Output.Dir != "" {
		return cfg.Output.Dir
	}
	return dataDir
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func maxAbsDiff(a, b []float64) float64 {
	worst := 0.0
	for i := range a {
		if i >= len(b) {
			break
		}
		if d := math.Abs(a[i] - b[i]); d > worst {
			worst = d
		}
	}
	return worst
}

func runProblem(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := report.New(outputDir(cfg))
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg)
	exp.SetLogger(newLogger())
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	fmt.Printf("running %s with %s...\n", cfg.Problem, cfg.Method)
	start := time.Now()
	res, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	id, err := st.Save("", res)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", id)
	fmt.Printf("steps: %d accepted, %d rejected\n", res.Stats.NAccepted, res.Stats.NRejected)
	fmt.Printf("f evaluations: %d\n", res.Stats.NFcnEval)
	fmt.Printf("final state: %v\n", res.Y)
	if res.Stats.StiffnessDetected {
		fmt.Printf("warning: equation appears stiff near x=%.4f\n", res.Stats.StiffnessX)
	}

	if len(res.Metrics) > 0 {
		names := make([]string, 0, len(res.Metrics))
		for name := range res.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("\nmetrics:")
		for _, name := range names {
			fmt.Printf("  %s: %.6g\n", name, res.Metrics[name])
		}
	}

	plotFile := plotPath
	if plotFile == "" {
		plotFile = cfg.Output.Plot
	}
	if plotFile != "" {
		title := fmt.Sprintf("%s (%s)", cfg.Problem, cfg.Method)
		if err := export.PlotSeries(plotFile, title, res.Xs, res.Ys); err != nil {
			return err
		}
		fmt.Printf("plot written to %s\n", plotFile)
	}

	if exportPath != "" {
		switch {
		case strings.HasSuffix(exportPath, ".json") || cfg.Output.Format == "json":
			err = report.ExportJSON(exportPath, res)
		default:
			err = report.ExportCSV(exportPath, res)
		}
		if err != nil {
			return err
		}
		fmt.Printf("trajectory written to %s\n", exportPath)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	rs, err := resolveRun(cfg)
	if err != nil {
		return err
	}

	m := tui.NewModel(rs.prob, rs.par, rs.x0, rs.xf, rs.y0)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func listMethods(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tORDER\tESTIMATOR\tSTAGES\tEMBEDDED\tFSAL\tDENSE")
	for _, m := range ode.ExplicitMethods() {
		info := m.Info()
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
			m, info.Order, info.EstimatorOrder, info.Stages,
			yesNo(info.Embedded), yesNo(info.FSAL), yesNo(info.DenseOutput))
	}
	return w.Flush()
}

func listProblems(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIM\tSPAN\tEXACT\tENERGY")
	for _, name := range problems.Names() {
		prob, err := problems.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t[%g, %g]\t%s\t%s\n",
			name, prob.System.Ndim, prob.X0, prob.Xf,
			yesNo(prob.Exact != nil), yesNo(prob.Energy != nil))
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := report.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROBLEM\tMETHOD\tTIME\tSPAN\tSTEPS\tFEVALS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t[%g, %g]\t%d\t%d\n",
			run.ID, run.Problem, run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.X0, run.Xf, run.Stats.NSteps, run.Stats.NFcnEval)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := report.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, xs, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	title := fmt.Sprintf("%s (%s)", meta.Problem, meta.Method)
	if plotPath != "" {
		if err := export.PlotSeries(plotPath, title, xs, states); err != nil {
			return err
		}
		fmt.Printf("plot written to %s\n", plotPath)
		return nil
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("problem: %s\n", meta.Problem)
	fmt.Printf("samples: %d\n\n", len(states))

	ncomp := len(states[0])
	if ncomp > 6 {
		ncomp = 6
	}
	for c := 0; c < ncomp; c++ {
		chart, err := export.AsciiSeries(states, c, 80, 10, fmt.Sprintf("y%d", c))
		if err != nil {
			return err
		}
		fmt.Println(chart)
		fmt.Println()
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st := report.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if xAxis < 0 || yAxis < 0 || xAxis >= len(states[0]) || yAxis >= len(states[0]) {
		return fmt.Errorf("state dimension %d too small for axes %d,%d", len(states[0]), xAxis, yAxis)
	}

	title := fmt.Sprintf("%s (%s)", meta.Problem, meta.Method)
	if plotPath != "" {
		if err := export.PlotPhase(plotPath, title, states, xAxis, yAxis); err != nil {
			return err
		}
		fmt.Printf("plot written to %s\n", plotPath)
		return nil
	}
	if svgPath != "" {
		svg, err := export.PhaseSVG(states, xAxis, yAxis, 800, 600, "#00ff00")
		if err != nil {
			return err
		}
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("svg written to %s\n", svgPath)
		return nil
	}

	minX, maxX := states[0][xAxis], states[0][xAxis]
	minY, maxY := states[0][yAxis], states[0][yAxis]
	for _, s := range states {
		if s[xAxis] < minX {
			minX = s[xAxis]
		}
		if s[xAxis] > maxX {
			maxX = s[xAxis]
		}
		if s[yAxis] < minY {
			minY = s[yAxis]
		}
		if s[yAxis] > maxY {
			maxY = s[yAxis]
		}
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	canvas := tui.NewCanvas(70, 22)
	dw, dh := canvas.Dots()
	px0, py0 := 0, 0
	for i, s := range states {
		px := int((s[xAxis] - minX) / rangeX * float64(dw-1))
		py := int((1 - (s[yAxis]-minY)/rangeY) * float64(dh-1))
		if i == 0 {
			canvas.Set(px, py)
		} else {
			canvas.DrawLine(px0, py0, px, py)
		}
		px0, py0 = px, py
	}

	fmt.Printf("%s  y%d vs y%d\n\n", title, yAxis, xAxis)
	fmt.Print(canvas.String())
	fmt.Printf("\ny%d in [%.3g, %.3g]  y%d in [%.3g, %.3g]  %d points\n",
		xAxis, minX, maxX, yAxis, minY, maxY, len(states))
	return nil
}

func loadResult(st *report.Store, id string) (*experiment.Result, error) {
	meta, err := st.Load(id)
	if err != nil {
		return nil, err
	}
	states, xs, err := st.LoadStates(id)
	if err != nil {
		return nil, err
	}

	res := &experiment.Result{
		Problem: meta.Problem,
		Method:  meta.Method,
		X0:      meta.X0,
		Xf:      meta.Xf,
		Xs:      xs,
		Ys:      states,
		Stats:   meta.Stats,
		Metrics: meta.Metrics,
	}
	if n := len(states); n > 0 {
		res.Y = states[n-1]
	}
	return res, nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := report.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportRunCSV(cmd *cobra.Command, args []string) error {
	res, err := loadResult(report.New(dataDir), args[0])
	if err != nil {
		return err
	}
	return report.WriteCSV(os.Stdout, res)
}

func exportRunJSON(cmd *cobra.Command, args []string) error {
	res, err := loadResult(report.New(dataDir), args[0])
	if err != nil {
		return err
	}
	return report.WriteJSON(os.Stdout, res)
}

func benchProblem(cmd *cobra.Command, args []string) error {
	prob, err := problems.Get(args[0])
	if err != nil {
		return err
	}
	m, err := ode.ParseMethod(methodName)
	if err != nil {
		return err
	}
	tols, err := parseFloats(tolsFlag)
	if err != nil {
		return fmt.Errorf("bad --tols: %w", err)
	}

	xf := prob.Xf
	if cmd.Flags().Changed("xf") {
		xf = xfFlag
	}

	tasks := compute.ToleranceLadder(m, prob.System, prob.Y0, prob.X0, xf, tols)

	fmt.Printf("sweeping %s on %s over [%g, %g]\n\n", methodName, prob.Name, prob.X0, xf)
	start := time.Now()
	results := compute.Sweep(context.Background(), tasks)
	elapsed := time.Since(start)

	var ref []float64
	if prob.Exact != nil {
		ref = prob.Exact(xf)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOL\tSTEPS\tACCEPTED\tREJECTED\tFEVALS\tERROR")
	for i, r := range results {
		errStr := "-"
		switch {
		case r.Err != nil:
			errStr = r.Err.Error()
		case ref != nil:
			errStr = fmt.Sprintf("%.2e", maxAbsDiff(r.Y, ref))
		}
		fmt.Fprintf(w, "%g\t%d\t%d\t%d\t%d\t%s\n",
			tols[i], r.Stats.NSteps, r.Stats.NAccepted, r.Stats.NRejected,
			r.Stats.NFcnEval, errStr)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", elapsed)
	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	prob, err := problems.Get(args[0])
	if err != nil {
		return err
	}

	xf := prob.Xf
	if cmd.Flags().Changed("xf") {
		xf = xfFlag
	}

	tasks := make([]compute.Task, 0, len(args)-1)
	for _, name := range args[1:] {
		m, err := ode.ParseMethod(name)
		if err != nil {
			return err
		}
		par := ode.NewParams(m)
		if err := par.SetTolerances(absTol, relTol); err != nil {
			return err
		}
		par.MaxSteps = 1000000
		tasks = append(tasks, compute.Task{
			Name: name, Params: par, Sys: prob.System,
			Y0: prob.Y0, X0: prob.X0, Xf: xf,
		})
	}

	fmt.Printf("comparing methods on %s over [%g, %g] at tol %g\n\n", prob.Name, prob.X0, xf, absTol)
	results := compute.Sweep(context.Background(), tasks)

	var ref []float64
	if prob.Exact != nil {
		ref = prob.Exact(xf)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tSTEPS\tACCEPTED\tREJECTED\tFEVALS\tERROR")
	for _, r := range results {
		errStr := "-"
		switch {
		case r.Err != nil:
			errStr = r.Err.Error()
		case ref != nil:
			errStr = fmt.Sprintf("%.2e", maxAbsDiff(r.Y, ref))
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\n",
			r.Name, r.Stats.NSteps, r.Stats.NAccepted, r.Stats.NRejected,
			r.Stats.NFcnEval, errStr)
	}
	return w.Flush()
}

func measureOrder(cmd *cobra.Command, args []string) error {
	prob, err := problems.Get(args[0])
	if err != nil {
		return err
	}
	m, err := ode.ParseMethod(methodName)
	if err != nil {
		return err
	}
	hs, err := parseFloats(stepsFlag)
	if err != nil {
		return fmt.Errorf("bad --steps: %w", err)
	}

	est, err := analysis.MeasureOrder(context.Background(), m, prob, hs)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "H\tERROR")
	for i := range est.Steps {
		fmt.Fprintf(w, "%g\t%.3e\n", est.Steps[i], est.Errors[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nestimated order: %.2f (nominal %d)\n", est.Order, m.Info().Order)

	if plotPath != "" {
		title := fmt.Sprintf("%s on %s", methodName, prob.Name)
		if err := export.PlotConvergence(plotPath, title, est); err != nil {
			return err
		}
		fmt.Printf("plot written to %s\n", plotPath)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := report.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, xs, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) < 4 {
		return fmt.Errorf("not enough samples for spectral analysis")
	}
	if component < 0 || component >= len(states[0]) {
		return fmt.Errorf("component %d out of range for dimension %d", component, len(states[0]))
	}

	data := make([]float64, len(states))
	for i := range states {
		data[i] = states[i][component]
	}
	dx := 1.0
	if len(xs) > 1 {
		dx = xs[1] - xs[0]
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("problem: %s, component y%d\n\n", meta.Problem, component)

	// Most of the interesting content sits in the low bins.
	freqs, amps := analysis.Spectrum(data, dx)
	plotData := amps
	if len(amps) >= 16 {
		plotData = amps[:len(amps)/4]
	}

	chart := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("amplitude spectrum (y%d)", component)),
	)
	fmt.Println(chart)
	fmt.Println()

	if len(freqs) > 1 {
		fmt.Printf("frequency resolution: %.4g\n", freqs[1])
	}
	dom := analysis.DominantFrequency(data, dx)
	fmt.Printf("dominant frequency: %.4g\n", dom)
	if dom > 0 {
		fmt.Printf("period: %.4g\n", 1/dom)
	}
	return nil
}

func estimateLyapunov(cmd *cobra.Command, args []string) error {
	prob, err := problems.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("estimating largest lyapunov exponent of %s over %g time units...\n", prob.Name, lyapTime)
	lam, err := analysis.Lyapunov(context.Background(), prob.System, prob.Y0, prob.X0, lyapDx, lyapTime, lyapD0)
	if err != nil {
		return err
	}

	fmt.Printf("lambda = %.4f\n", lam)
	if lam > 1e-3 {
		fmt.Println("positive exponent: nearby trajectories diverge exponentially")
	} else {
		fmt.Println("no exponential divergence detected")
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := experiment.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := report.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s (%d steps)\n", sc.Name, len(sc.Steps))
	results, runErr := experiment.RunScenario(context.Background(), newLogger(), sc, experiment.NewRegistry())

	for i := range results {
		if i < len(sc.Steps) && sc.Steps[i].SaveAs != "" {
			if _, err := st.Save(sc.Steps[i].SaveAs, &results[i]); err != nil {
				return err
			}
			fmt.Printf("saved %s\n", sc.Steps[i].SaveAs)
		}
	}
	if runErr != nil {
		return runErr
	}

	fmt.Printf("completed %d steps\n", len(results))
	return nil
}
