package main

import (
	"fmt"

	"pet-matcher/internal/app"
	"pet-matcher/internal/config"
	"pet-matcher/internal/domain/match"
	"pet-matcher/internal/domain/matching"
	"pet-matcher/internal/domain/pets"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type matchFlags struct {
	petType string
	ratings map[matching.Trait]*int
	topK    int
	asJSON  bool
}

func newMatchCommand(g *globalFlags) *cobra.Command {
	f := &matchFlags{ratings: map[matching.Trait]*int{}}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank adoptable pets for a questionnaire",
		Long: `Run a questionnaire against the current population and print the ranking.

Every trait rating is required and must be between 1 and 5.`,
		Example: `  matchctl match --type dog --dogs 5 --cats 1 --kids 4 --energy 3 --affection 5 --training 2`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatch(cmd, g, f)
		},
	}

	cmd.Flags().StringVar(&f.petType, "type", "", "Species: dog or cat")
	for _, t := range matching.Traits() {
		f.ratings[t] = cmd.Flags().Int(t.String(), 0, fmt.Sprintf("Rating for %s (1-5)", t))
	}
	cmd.Flags().IntVar(&f.topK, "top-k", 0, "Number of matches (default: match.top_k)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print JSON instead of a table")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func runMatch(cmd *cobra.Command, g *globalFlags, f *matchFlags) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	log := g.logger(cmd)
	ctx := cmd.Context()

	q := match.Questionnaire{Species: f.petType, Ratings: matching.Ratings{}}
	for t, v := range f.ratings {
		if cmd.Flags().Changed(t.String()) {
			q.Ratings[t] = *v
		}
	}
	// Validamos antes de tocar datos.
	if _, err := match.Validate(q); err != nil {
		return err
	}

	pop, err := app.NewPopulation(ctx, cfg.Population, log)
	if err != nil {
		return err
	}
	defer pop.Close()

	store, err := app.NewModelStore(ctx, cfg.Model, log)
	if err != nil {
		return err
	}
	policy, _ := matching.ParseZeroScalePolicy(cfg.Model.ZeroScalePolicy)

	opts := match.Options{
		TopK:            cfg.Match.TopK,
		LoadTimeout:     cfg.Match.LoadTimeout,
		ZeroScalePolicy: policy,
		Logger:          log,
	}
	if f.topK != 0 {
		opts.TopK = f.topK
	}

	var scalers match.ScalerProvider
	if store != nil {
		scalers = store
	} else {
		opts.FitFromPopulation = true
	}

	svc, err := match.NewService(pets.NewService(pop.Repo), scalers, opts)
	if err != nil {
		return err
	}
	results, err := svc.Match(ctx, q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.asJSON {
		type row struct {
			ID              string  `json:"id"`
			Name            string  `json:"name"`
			Type            string  `json:"type"`
			MatchPercentage float64 `json:"match_percentage"`
		}
		rows := make([]row, 0, len(results))
		for _, r := range results {
			rows = append(rows, row{r.Pet.ID, r.Pet.Name, string(r.Pet.Species), r.MatchPercentage})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Fprintf(out, "%-4s %-24s %-16s %8s\n", "#", "Name", "Breed", "Match%")
	for i, r := range results {
		fmt.Fprintf(out, "%-4d %-24s %-16s %8.2f\n", i+1, r.Pet.Name, r.Pet.Breed, r.MatchPercentage)
	}
	if cfg.Model.Source == config.ModelPopulation {
		fmt.Fprintln(out, "(scaler fitted from the current population)")
	}
	return nil
}
