package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"coursekit/internal/app"
	"coursekit/internal/course"
	"coursekit/internal/gather"
)

type ExitCoder interface {
	ExitCode() int
}

type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }
func (e *exitError) ExitCode() int { return e.code }

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if ex, ok := err.(ExitCoder); ok {
			os.Exit(ex.ExitCode())
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var jsonOutput bool

	newSvc := func() (*app.Service, error) {
		return app.New(app.Options{ConfigPath: configPath})
	}

	cmd := &cobra.Command{
		Use:           "coursekit",
		Short:         "Scaffold and audit directory trees for university course administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")

	cmd.AddCommand(newInitCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newTeachingCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newAssessmentCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newDocsCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newListCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newLogCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newDoctorCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newVersionCmd(&jsonOutput))

	return cmd
}

func newInitCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	var name, year, term, leader, root string
	var subdirs []string

	cmd := &cobra.Command{
		Use:     "init <code>",
		Aliases: []string{"structure", "new"},
		Short:   "Scaffold a new course unit tree",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			rec, err := svc.UnitInit(app.UnitParams{
				Name:    name,
				Code:    args[0],
				Year:    year,
				Term:    term,
				Leader:  leader,
				Root:    root,
				Subdirs: subdirs,
			})
			if err != nil {
				return err
			}
			return print(*jsonOutput, rec, fmt.Sprintf("structured %s at %s", rec.Key(), rec.Root))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "unit display name")
	cmd.Flags().StringVar(&year, "year", "", "academic year, e.g. 2026-27")
	cmd.Flags().StringVar(&term, "term", "", "term: AUT|SPR|SUM")
	cmd.Flags().StringVar(&leader, "leader", "", "unit leader")
	cmd.Flags().StringVar(&root, "root", "", "parent directory (default: configured storage root)")
	cmd.Flags().StringSliceVar(&subdirs, "subdir", nil, "override organizational subfolders")
	return cmd
}

func newTeachingCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	var weeks int
	var topics []string

	cmd := &cobra.Command{
		Use:   "teaching <code>",
		Short: "Create per-week teaching-material folders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			if err := svc.Teaching(args[0], weeks, topics); err != nil {
				return err
			}
			n := weeks
			if n == 0 {
				n = svc.Config.Defaults.TeachingWeeks
			}
			return print(*jsonOutput, map[string]int{"weeks": n}, fmt.Sprintf("created %d week folders for %s", n, args[0]))
		},
	}
	cmd.Flags().IntVar(&weeks, "weeks", 0, "number of teaching weeks (default from config)")
	cmd.Flags().StringSliceVar(&topics, "topics", nil, "topic per week, count must equal --weeks")
	return cmd
}

func newAssessmentCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	assessmentCmd := &cobra.Command{
		Use:     "assessment",
		Aliases: []string{"assess"},
		Short:   "Manage assessments of a unit",
	}

	var kind, due string
	var weight float64
	createCmd := &cobra.Command{
		Use:     "create <unit-code> <name>",
		Aliases: []string{"new"},
		Short:   "Scaffold an assessment directory under its unit",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			dueDate, err := time.Parse("2006-01-02", due)
			if err != nil {
				return fmt.Errorf("CLI_DUE_DATE: %w", err)
			}
			rec, err := svc.AssessmentCreate(app.AssessmentParams{
				UnitCode: args[0],
				Name:     args[1],
				Kind:     kind,
				DueDate:  dueDate,
				Weight:   weight,
			})
			if err != nil {
				return err
			}
			return print(*jsonOutput, rec, fmt.Sprintf("structured %s at %s", rec.Key(), rec.Root))
		},
	}
	createCmd.Flags().StringVar(&kind, "kind", "", "assessment kind, e.g. Exam, Coursework")
	createCmd.Flags().StringVar(&due, "due", "", "due date, YYYY-MM-DD")
	createCmd.Flags().Float64Var(&weight, "weight", 0, "percentage of unit grade")

	var gradersKind string
	gradersCmd := &cobra.Command{
		Use:   "graders <unit-code> <name> <grader>...",
		Short: "Write the grader roster for an assessment",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			path, err := svc.Graders(args[0], args[1], gradersKind, args[2:])
			if err != nil {
				return err
			}
			return print(*jsonOutput, map[string]string{"path": path}, "wrote "+path)
		},
	}
	gradersCmd.Flags().StringVar(&gradersKind, "kind", "", "assessment kind")

	assessmentCmd.AddCommand(createCmd, gradersCmd)
	return assessmentCmd
}

func newDocsCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	docsCmd := &cobra.Command{
		Use:   "docs",
		Short: "Manage unit documents",
	}

	var interactive, yes bool
	copyCmd := &cobra.Command{
		Use:   "copy <unit-code> [file...]",
		Short: "Copy documents into the unit's documents folder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			docs := args[1:]
			if interactive {
				gathered, err := gather.Documents(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				docs = append(docs, gathered...)
			}

			confirm := gather.ConsoleConfirm(cmd.InOrStdin(), cmd.OutOrStdout())
			if yes {
				confirm = gather.ConfirmAll
			}
			copied, err := svc.DocsCopy(args[0], docs, confirm)
			if errors.Is(err, course.ErrDeclined) {
				fmt.Fprintln(cmd.OutOrStdout(), "aborted: no files copied")
				return nil
			}
			if err != nil {
				return err
			}
			return print(*jsonOutput, copied, fmt.Sprintf("copied %d document(s)", len(copied)))
		},
	}
	copyCmd.Flags().BoolVar(&interactive, "interactive", false, "prompt for document paths on the console")
	copyCmd.Flags().BoolVar(&yes, "yes", false, "overwrite colliding files without prompting")

	docsCmd.AddCommand(copyCmd)
	return docsCmd
}

func newListCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered units and assessments",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			st, err := svc.List()
			if err != nil {
				return err
			}
			if *jsonOutput {
				return print(true, st, "")
			}
			if len(st.Units) == 0 {
				fmt.Println("no units registered")
				return nil
			}
			for _, u := range st.Units {
				fmt.Printf("- %s %s (%s) leader=%s %s\n", u.Code, u.Term, u.Year, u.Leader, u.Root)
			}
			for _, a := range st.Assessments {
				fmt.Printf("  * %s: %s (%s) due=%s weight=%g%%\n", a.UnitCode, a.Name, a.Kind, a.DueDate.Format("2006-01-02"), a.Weight)
			}
			return nil
		},
	}
}

func newLogCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "log <unit-code-or-dir>",
		Short: "Show the setup log of a unit or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			entries, err := svc.LogEntries(args[0])
			if err != nil {
				return err
			}
			if *jsonOutput {
				return print(true, entries, "")
			}
			if len(entries) == 0 {
				fmt.Println("no operations recorded")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%s %s %s", e.Timestamp, e.Operation, e.Status)
				for k, v := range e.Fields {
					fmt.Printf(" %s=%q", k, v)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newDoctorCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the installation and every registered tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			report := svc.Doctor()
			if *jsonOutput {
				if err := print(true, report, ""); err != nil {
					return err
				}
			} else {
				if len(report.Findings) == 0 {
					fmt.Println("all checks passed")
				}
				for _, f := range report.Findings {
					fmt.Printf("[%s] %s: %s\n", f.Level, f.Code, f.Message)
				}
			}
			if !report.Healthy {
				return &exitError{code: 2, msg: "doctor found problems"}
			}
			return nil
		},
	}
}

func print(jsonOutput bool, payload any, message string) error {
	if jsonOutput {
		blob, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(blob))
		return nil
	}
	if message != "" {
		fmt.Println(message)
	}
	return nil
}
