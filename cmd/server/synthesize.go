package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
)

type synthesizeFlags struct {
	day      int
	age      int
	tone     string
	language string
	asJSON   bool
}

func newSynthesizeCmd(c *cli) *cobra.Command {
	var f synthesizeFlags
	cmd := &cobra.Command{
		Use:   "synthesize",
		Short: "Synthesize one lesson and print it",
		Example: "  lessond synthesize --day 1 --age 7 --tone nurturing\n" +
			"  lessond synthesize --day 200 --age 40 --tone analytical --language fr --json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := domain.NewSynthesisRequest(f.day, f.age, f.tone, f.language)
			if err != nil {
				return err
			}

			app, err := newApplication(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer app.cleanup(cmd.Context())

			result, err := app.engine.Synthesize(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if f.asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printLesson(out, result)
			return nil
		},
	}

	cmd.Flags().IntVar(&f.day, "day", 0, "day of the year (1-366)")
	cmd.Flags().IntVar(&f.age, "age", 0, "learner age (5-65)")
	cmd.Flags().StringVar(&f.tone, "tone", string(domain.ToneNurturing), "narrator tone: nurturing, energetic or analytical")
	cmd.Flags().StringVar(&f.language, "language", string(domain.LanguageEnglish), "output language name or tag")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the full result as JSON")
	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("age")
	return cmd
}

func printLesson(w io.Writer, r domain.SynthesisResult) {
	heading := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgYellow)
	dim := color.New(color.Faint)

	heading.Fprintln(w, r.Title)
	dim.Fprintf(w, "%s · %s · %s (%s)\n\n",
		r.Metadata.DurationLabel, r.Metadata.ComplexityLabel,
		r.Metadata.Avatar.Name, r.Metadata.Avatar.Personality)

	label.Fprintln(w, "Introduction")
	fmt.Fprintf(w, "%s\n\n", r.Introduction)
	label.Fprintln(w, "Concept")
	fmt.Fprintf(w, "%s\n\n", r.Concept)
	label.Fprintln(w, "Examples")
	for _, ex := range r.Examples {
		fmt.Fprintf(w, "  - %s\n", ex)
	}
	fmt.Fprintln(w)
	label.Fprintln(w, "Reflection")
	fmt.Fprintln(w, r.Reflection)

	if r.Metadata.IsFallback {
		msg := "fallback content served"
		if r.Metadata.Error != "" {
			msg += ": " + r.Metadata.Error
		}
		color.New(color.FgRed).Fprintf(w, "\n%s\n", msg)
	}
}
