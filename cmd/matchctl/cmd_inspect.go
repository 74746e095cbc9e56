package main

import (
	"fmt"
	"io"

	"pet-matcher/internal/adapters/model"
	"pet-matcher/internal/app"
	"pet-matcher/internal/domain/matching"
	"pet-matcher/internal/domain/pets"

	"github.com/spf13/cobra"
)

func newInspectModelCommand(g *globalFlags) *cobra.Command {
	var (
		species string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "inspect-model",
		Short: "Print the scaler parameters in use",
		Long: `Load the scaler artifacts from the configured source and print mean and
scale per trait. With --model-source population the scaler is fitted from the
current population, the same way the API does per request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets := pets.AllSpecies()
			if species != "" {
				sp, ok := pets.ParseSpecies(species)
				if !ok {
					return fmt.Errorf("unknown species %q (want dog or cat)", species)
				}
				targets = []pets.Species{sp}
			}
			return runInspect(cmd, g, targets, asJSON)
		},
	}

	cmd.Flags().StringVar(&species, "species", "", "Only this species (dog or cat)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print artifacts as JSON")

	return cmd
}

func runInspect(cmd *cobra.Command, g *globalFlags, targets []pets.Species, asJSON bool) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	log := g.logger(cmd)
	ctx := cmd.Context()

	store, err := app.NewModelStore(ctx, cfg.Model, log)
	if err != nil {
		return err
	}
	policy, _ := matching.ParseZeroScalePolicy(cfg.Model.ZeroScalePolicy)

	var petsSvc *pets.Service
	if store == nil {
		pop, err := app.NewPopulation(ctx, cfg.Population, log)
		if err != nil {
			return err
		}
		defer pop.Close()
		petsSvc = pets.NewService(pop.Repo)
	}

	out := cmd.OutOrStdout()
	for _, sp := range targets {
		var sc *matching.Scaler
		if store != nil {
			sc, err = store.Scaler(ctx, sp)
		} else {
			sc, err = fitFromPopulation(cmd, petsSvc, sp, policy)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", sp, err)
		}

		if asJSON {
			raw, err := model.NewArtifact(sp, sc).Encode()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(raw))
			continue
		}
		printScaler(out, sp, sc)
	}
	return nil
}

func fitFromPopulation(cmd *cobra.Command, svc *pets.Service, sp pets.Species, policy matching.ZeroScalePolicy) (*matching.Scaler, error) {
	items, err := svc.Population(cmd.Context(), sp)
	if err != nil {
		return nil, err
	}
	vs, err := matching.BuildVectors(pets.RatingsOf(items))
	if err != nil {
		return nil, err
	}
	return matching.FitScaler(vs, policy)
}

func printScaler(w io.Writer, sp pets.Species, sc *matching.Scaler) {
	mean, scale := sc.Mean(), sc.Scale()
	fmt.Fprintf(w, "species: %s (schema v%d)\n", sp, matching.SchemaVersion)
	fmt.Fprintf(w, "  %-10s %10s %10s\n", "trait", "mean", "scale")
	for i, t := range matching.Traits() {
		fmt.Fprintf(w, "  %-10s %10.4f %10.4f\n", t, mean[i], scale[i])
	}
}
