package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/glyphfix"
	"github.com/gogpu/glyphfix/fontbounds"
	"github.com/gogpu/glyphfix/memdoc"
)

var previewCmd = &cobra.Command{
	Use:   "preview [flags] <document>",
	Short: "Show which components would be corrected",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

var applyCmd = &cobra.Command{
	Use:   "apply [flags] <document>",
	Short: "Correct components and save the document",
	Long: `Apply corrects every qualifying component in one undo group and saves
the document. Save to a .gfdoc snapshot to keep the undo history for
"glyphfix undo".`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

var undoCmd = &cobra.Command{
	Use:   "undo [flags] <document.gfdoc>",
	Short: "Revert the last applied correction",
	Args:  cobra.ExactArgs(1),
	RunE:  runUndo,
}

func init() {
	addRunFlags(previewCmd)
	addRunFlags(applyCmd)
	applyCmd.Flags().StringP("output", "o", "", "write the result here instead of overwriting the input")
	applyCmd.Flags().Bool("dry-run", false, "print the report and stop")
	undoCmd.Flags().StringP("output", "o", "", "write the result here instead of overwriting the input")
}

// prepare loads the document named by args[0] and builds an engine from
// the config file and flags.
func prepare(cmd *cobra.Command, args []string) (*memdoc.Document, *glyphfix.Engine, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := overrideFromFlags(cmd, &cfg); err != nil {
		return nil, nil, err
	}
	settings, err := cfg.settings()
	if err != nil {
		return nil, nil, err
	}

	doc, err := memdoc.Load(args[0])
	if err != nil {
		return nil, nil, err
	}
	src, err := boundsSource(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}
	if src != nil {
		doc.SetBoundsSource(src)
	}

	engine, err := glyphfix.New(settings)
	if err != nil {
		return nil, nil, err
	}
	return doc, engine, nil
}

// boundsSource opens the fonts named in cfg, if any.
func boundsSource(cmd *cobra.Command, cfg fileConfig) (memdoc.BoundsSource, error) {
	if cfg.Variable != "" && len(cfg.Fonts) > 0 {
		return nil, errors.New("use either --font or --variable, not both")
	}
	if len(cfg.Fonts) > 0 {
		static, err := fontbounds.LoadStaticFiles(cmd.Context(), cfg.Fonts)
		if err != nil {
			return nil, err
		}
		return static, nil
	}
	if cfg.Variable == "" {
		return nil, nil
	}

	masters := make(map[string]fontbounds.Location, len(cfg.Locations))
	for id, s := range cfg.Locations {
		loc, err := parseLocation(s)
		if err != nil {
			return nil, fmt.Errorf("location for master %q: %w", id, err)
		}
		masters[id] = loc
	}
	data, err := os.ReadFile(cfg.Variable)
	if err != nil {
		return nil, err
	}
	variable, err := fontbounds.NewVariable(data, masters)
	if err != nil {
		return nil, err
	}
	return variable, nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	doc, engine, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	report, err := engine.Preview(doc)
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), report)
	return nil
}

func runApply(cmd *cobra.Command, args []string) error {
	doc, engine, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	plan, err := engine.Plan(doc)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printReport(out, glyphfix.Report(plan))
	if dryRun {
		return nil
	}

	res, err := engine.ApplyPlan(doc, plan)
	printResult(out, engine.Settings(), res)
	if err != nil {
		return err
	}
	if res.Fixed == 0 {
		return nil
	}
	return save(cmd, doc, args[0])
}

func runUndo(cmd *cobra.Command, args []string) error {
	doc, err := memdoc.Load(args[0])
	if err != nil {
		return err
	}
	name := doc.UndoName()
	if !doc.Undo() {
		return fmt.Errorf("%s: nothing to undo", args[0])
	}
	if name == "" {
		name = "edit"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reverted %s\n", headerStyle.Sprint(name))
	return save(cmd, doc, args[0])
}

func save(cmd *cobra.Command, doc *memdoc.Document, input string) error {
	path, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if path == "" {
		path = input
	}
	if err := memdoc.Save(doc, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	glyphfix.Logger().Info("document saved", "path", path, "undo", doc.UndoDepth())
	return nil
}

func printResult(w io.Writer, s glyphfix.Settings, res glyphfix.Result) {
	for _, f := range res.Failures {
		fmt.Fprintln(w, errorStyle.Sprint(f.Error()))
	}
	line := glyphfix.Summary(s, res)
	switch {
	case res.Aborted || res.Failed > 0:
		fmt.Fprintln(w, warnStyle.Sprint(line))
	default:
		fmt.Fprintln(w, okStyle.Sprint(line))
	}
}
